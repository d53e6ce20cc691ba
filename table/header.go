package table

import (
	"fmt"
	"maps"

	"github.com/arloliu/sectable/errs"
)

// Header is the decoded, queryable representation of one section table record.
//
// Headers are immutable once decoded and safe for concurrent use.
type Header struct {
	number              int
	name                string
	tableRelativeOffset int64
	fields              map[string]uint64
}

// Number returns the 1-based position of the section within the table.
//
// The number is assigned by decode order; it is not stored in the raw bytes.
func (h Header) Number() int {
	return h.number
}

// Name returns the decoded section name.
//
// The name is the UTF-8 decoding of the string field's raw bytes with trailing
// NUL and whitespace padding trimmed. Leading characters, including a literal
// dot, are preserved.
func (h Header) Name() string {
	return h.name
}

// Field returns the decoded unsigned value of the integer field with the
// given key.
//
// The decoded map holds exactly the integer-typed keys of the specification
// the table was decoded with; asking for anything else signals a
// specification/model mismatch rather than bad user input.
//
// Returns:
//   - uint64: Decoded field value
//   - error: errs.ErrFieldNotFound if key is absent
func (h Header) Field(key string) (uint64, error) {
	value, ok := h.fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrFieldNotFound, key)
	}

	return value, nil
}

// Fields returns a copy of the decoded integer field map.
func (h Header) Fields() map[string]uint64 {
	return maps.Clone(h.fields)
}

// TableRelativeOffset returns the byte offset of this record's start within
// the table buffer, always (Number()-1) * EntrySize.
func (h Header) TableRelativeOffset() int64 {
	return h.tableRelativeOffset
}
