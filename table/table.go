package table

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/sectable/endian"
	"github.com/arloliu/sectable/errs"
	"github.com/arloliu/sectable/internal/hash"
	"github.com/arloliu/sectable/internal/options"
	"github.com/arloliu/sectable/spec"
)

// decodeState tracks the table lifecycle: Constructed -> Decoded, or
// Constructed -> Failed when Decode hits a terminal error.
type decodeState uint8

const (
	stateConstructed decodeState = iota
	stateDecoded
	stateFailed
)

// Table owns the ordered collection of decoded section headers.
//
// A Table has a two-phase lifecycle: New validates the buffer against the
// declared entry count and clones it, Decode populates the header sequence.
// Decode is not safe to call concurrently on the same instance; after a
// successful Decode the table is immutable and safe for unrestricted
// concurrent reads.
type Table struct {
	data        []byte
	entryCount  int
	tableOffset int64

	spec       *spec.Spec
	engine     endian.EndianEngine
	logger     log.Logger
	maxEntries int

	state     decodeState
	decodeErr error
	headers   []Header
}

// Option is a functional option for configuring a Table.
type Option = options.Option[*Table]

// WithSpec sets the field specification used to decode records. When not set,
// the table decodes with spec.Default().
func WithSpec(s *spec.Spec) Option {
	return options.New(func(t *Table) error {
		if s == nil {
			return fmt.Errorf("specification cannot be nil")
		}
		t.spec = s

		return nil
	})
}

// WithLogger sets the logger used for decode diagnostics. The default is a
// nop logger.
func WithLogger(logger log.Logger) Option {
	return options.New(func(t *Table) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		t.logger = logger

		return nil
	})
}

// WithMaxEntryCount overrides the cap applied to the declared entry count.
// The cap guards against pathological counts from untrusted input.
func WithMaxEntryCount(maxEntries int) Option {
	return options.New(func(t *Table) error {
		if maxEntries <= 0 {
			return fmt.Errorf("max entry count must be positive, got %d", maxEntries)
		}
		t.maxEntries = maxEntries

		return nil
	})
}

// WithEndianEngine sets the byte order used for integer fields. The wire
// format is little-endian; this exists for diagnostic tooling.
func WithEndianEngine(engine endian.EndianEngine) Option {
	return options.New(func(t *Table) error {
		if engine == nil {
			return fmt.Errorf("endian engine cannot be nil")
		}
		t.engine = engine

		return nil
	})
}

// New creates a Table over the raw section table bytes.
//
// The entry count and table offset are supplied externally (by the header
// walk that located the table). New validates the count before any
// proportional work: it must be non-negative, within the configured cap, and
// the buffer must hold at least entryCount*EntrySize bytes. The buffer is
// cloned, so later mutation of data does not affect the table.
//
// The returned table is not yet decoded; call Decode before issuing header
// queries.
//
// Parameters:
//   - data: Raw table bytes, at least entryCount*EntrySize long
//   - entryCount: Number of records in the table
//   - tableOffset: Absolute byte offset of the table's first record in the
//     source file
//   - opts: Optional configuration (see WithSpec, WithLogger,
//     WithMaxEntryCount, WithEndianEngine)
//
// Returns:
//   - *Table: Constructed table in the not-decoded state
//   - error: errs.ErrInvalidEntryCount, errs.ErrTooManyEntries,
//     errs.ErrBufferTooSmall, or an option error
func New(data []byte, entryCount int, tableOffset int64, opts ...Option) (*Table, error) {
	t := &Table{
		entryCount:  entryCount,
		tableOffset: tableOffset,
		engine:      endian.GetLittleEndianEngine(),
		logger:      log.NewNopLogger(),
		maxEntries:  DefaultMaxEntryCount,
	}

	if err := options.Apply(t, opts...); err != nil {
		return nil, err
	}

	if entryCount < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidEntryCount, entryCount)
	}
	if entryCount > t.maxEntries {
		return nil, fmt.Errorf("%w: %d > %d", errs.ErrTooManyEntries, entryCount, t.maxEntries)
	}
	if entryCount*EntrySize > len(data) {
		return nil, fmt.Errorf("%w: need %d bytes for %d entries, have %d",
			errs.ErrBufferTooSmall, entryCount*EntrySize, entryCount, len(data))
	}

	t.data = slices.Clone(data[:entryCount*EntrySize])

	return t, nil
}

// Decode decodes every record in table order and populates the header
// sequence.
//
// Decoding validates the specification layout against EntrySize first, so a
// specification field reaching outside the record surfaces here rather than
// at construction time. A decode error is terminal: the table enters the
// Failed state, no partial header list is exposed, and repeated calls return
// the recorded error. Decode on an already decoded table is a no-op.
//
// Returns:
//   - error: errs.ErrMalformedRecord or errs.ErrSpecFormat on failure
func (t *Table) Decode() error {
	switch t.state {
	case stateDecoded:
		return nil
	case stateFailed:
		return t.decodeErr
	}

	if t.spec == nil {
		t.spec = spec.Default()
	}

	if err := t.spec.Validate(EntrySize); err != nil {
		return t.fail(err)
	}

	headers := make([]Header, 0, t.entryCount)
	for i := range t.entryCount {
		header, err := decodeRecord(t.data, i, t.spec, t.engine)
		if err != nil {
			return t.fail(err)
		}
		headers = append(headers, header)
	}

	t.headers = headers
	t.state = stateDecoded

	level.Debug(t.logger).Log("msg", "section table decoded",
		"sections", t.entryCount, "offset", t.tableOffset, "size", t.Size())

	return nil
}

func (t *Table) fail(err error) error {
	t.state = stateFailed
	t.decodeErr = err
	t.headers = nil

	level.Debug(t.logger).Log("msg", "section table decode failed", "err", err)

	return err
}

// ensureDecoded returns errs.ErrNotDecoded unless a successful Decode has
// completed. Pre-decode and post-failure queries fail explicitly instead of
// returning empty results, which keeps ordering bugs observable.
func (t *Table) ensureDecoded() error {
	if t.state != stateDecoded {
		return errs.ErrNotDecoded
	}

	return nil
}

// Headers returns the decoded headers in table order.
//
// The returned slice is a fresh copy; callers cannot mutate table state
// through it.
func (t *Table) Headers() ([]Header, error) {
	if err := t.ensureDecoded(); err != nil {
		return nil, err
	}

	return slices.Clone(t.headers), nil
}

// All returns an iterator over (section number, header) pairs in table order.
//
// The iterator yields nothing when the table is not decoded; use Headers when
// the not-decoded case must be distinguished from an empty table.
func (t *Table) All() iter.Seq2[int, Header] {
	return func(yield func(int, Header) bool) {
		if t.state != stateDecoded {
			return
		}
		for _, h := range t.headers {
			if !yield(h.number, h) {
				return
			}
		}
	}
}

// Header returns the header with the given 1-based section number.
//
// Returns:
//   - Header: The matching header
//   - error: errs.ErrNotDecoded, or errs.ErrInvalidSectionNumber if number is
//     outside [1, SectionCount()]
func (t *Table) Header(number int) (Header, error) {
	if err := t.ensureDecoded(); err != nil {
		return Header{}, err
	}
	if number < 1 || number > len(t.headers) {
		return Header{}, fmt.Errorf("%w: %d not in [1, %d]", errs.ErrInvalidSectionNumber, number, len(t.headers))
	}

	return t.headers[number-1], nil
}

// HeaderByName returns the first header in table order whose name equals
// name. Absence is encoded in the boolean rather than an error.
//
// Duplicate section names are not merged; first match is the documented
// policy. Callers needing every match can range over All or Headers.
//
// Returns:
//   - Header: The first matching header, zero value when absent
//   - bool: Whether a match was found
//   - error: errs.ErrNotDecoded when queried before a successful decode
func (t *Table) HeaderByName(name string) (Header, bool, error) {
	if err := t.ensureDecoded(); err != nil {
		return Header{}, false, err
	}

	for _, h := range t.headers {
		if h.name == name {
			return h, true, nil
		}
	}

	return Header{}, false, nil
}

// HeaderNamed returns the first header in table order whose name equals name,
// failing when no section matches. It is the throwing variant of
// HeaderByName.
//
// Returns:
//   - Header: The first matching header
//   - error: errs.ErrNotDecoded, or errs.ErrSectionNotFound if no match
func (t *Table) HeaderNamed(name string) (Header, error) {
	header, found, err := t.HeaderByName(name)
	if err != nil {
		return Header{}, err
	}
	if !found {
		return Header{}, fmt.Errorf("%w: %q", errs.ErrSectionNotFound, name)
	}

	return header, nil
}

// SectionCount returns the number of records in the table.
func (t *Table) SectionCount() int {
	return t.entryCount
}

// Size returns the size of the table in bytes, always EntrySize*SectionCount().
func (t *Table) Size() int {
	return EntrySize * t.entryCount
}

// TableOffset returns the absolute byte offset of the table's first record
// within the source file.
func (t *Table) TableOffset() int64 {
	return t.tableOffset
}

// Fingerprint returns the xxHash64 of the owned raw table bytes.
//
// Equal table bytes always produce equal fingerprints, independent of decode
// state or configuration.
func (t *Table) Fingerprint() uint64 {
	return hash.Sum(t.data)
}
