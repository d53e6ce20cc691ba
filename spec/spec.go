package spec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/sectable/errs"
)

// StringFieldKey is the field key that marks the single string-typed field of
// a specification. All other keys are unsigned little-endian integer fields.
const StringFieldKey = "NAME"

// FieldKind identifies how a field's raw bytes are interpreted.
type FieldKind uint8

const (
	KindInteger FieldKind = 0x1 // KindInteger represents an unsigned little-endian integer field.
	KindString  FieldKind = 0x2 // KindString represents a raw UTF-8 string field.
)

func (k FieldKind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Field describes one byte sub-range of a fixed-size record.
type Field struct {
	// Key is the stable identifier used for programmatic lookups.
	Key string
	// Label is the human-readable name used by the renderer.
	Label string
	// Offset is the byte offset of the field within one record.
	Offset int
	// Length is the byte length of the field within one record.
	Length int
	// Kind selects string or integer interpretation of the raw bytes.
	Kind FieldKind
}

// Spec is an immutable, ordered field-layout specification.
//
// The zero value is not usable; obtain instances from Load or Default.
// A Spec is safe for concurrent use once created.
type Spec struct {
	fields []Field
	byKey  map[string]int
}

// Load parses a specification resource from r.
//
// Blank lines and lines starting with '#' are ignored. Every other line must
// hold exactly four semicolon-separated parts: key;label;offset;length, with a
// non-negative offset and a positive length. Field order follows line order.
//
// Load validates syntax only; layout constraints against a concrete record
// size are checked by Validate.
//
// Returns:
//   - *Spec: Parsed specification
//   - error: Read error, or an error wrapping errs.ErrSpecFormat with the
//     offending line number
func Load(r io.Reader) (*Spec, error) {
	s := &Spec{byKey: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		field, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", errs.ErrSpecFormat, lineNum, err)
		}

		if _, exists := s.byKey[field.Key]; exists {
			return nil, fmt.Errorf("%w: line %d: duplicate key %q", errs.ErrSpecFormat, lineNum, field.Key)
		}

		s.byKey[field.Key] = len(s.fields)
		s.fields = append(s.fields, field)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read specification: %w", err)
	}

	if len(s.fields) == 0 {
		return nil, fmt.Errorf("%w: no fields defined", errs.ErrSpecFormat)
	}

	return s, nil
}

func parseLine(line string) (Field, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 4 {
		return Field{}, fmt.Errorf("expected key;label;offset;length, got %d parts", len(parts))
	}

	key := strings.TrimSpace(parts[0])
	label := strings.TrimSpace(parts[1])
	if key == "" || label == "" {
		return Field{}, fmt.Errorf("empty key or label")
	}

	offset, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Field{}, fmt.Errorf("invalid offset %q", parts[2])
	}
	if offset < 0 {
		return Field{}, fmt.Errorf("negative offset %d", offset)
	}

	length, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return Field{}, fmt.Errorf("invalid length %q", parts[3])
	}
	if length <= 0 {
		return Field{}, fmt.Errorf("non-positive length %d", length)
	}

	kind := KindInteger
	if key == StringFieldKey {
		kind = KindString
	}

	return Field{Key: key, Label: label, Offset: offset, Length: length, Kind: kind}, nil
}

// Validate checks the layout against a concrete record size.
//
// Every field must satisfy Offset+Length <= entrySize, no two fields may
// overlap, and exactly one string-kind field must exist.
//
// Returns:
//   - error: errs.ErrMalformedRecord for bounds or overlap violations,
//     errs.ErrSpecFormat if the string field is missing or duplicated
func (s *Spec) Validate(entrySize int) error {
	covered := make([]bool, entrySize)
	stringFields := 0

	for _, f := range s.fields {
		if f.Offset+f.Length > entrySize {
			return fmt.Errorf("%w: field %q range [%d, %d) exceeds entry size %d",
				errs.ErrMalformedRecord, f.Key, f.Offset, f.Offset+f.Length, entrySize)
		}

		for i := f.Offset; i < f.Offset+f.Length; i++ {
			if covered[i] {
				return fmt.Errorf("%w: field %q overlaps byte %d", errs.ErrMalformedRecord, f.Key, i)
			}
			covered[i] = true
		}

		if f.Kind == KindString {
			stringFields++
		}
	}

	if stringFields != 1 {
		return fmt.Errorf("%w: expected exactly one %s field, found %d",
			errs.ErrSpecFormat, StringFieldKey, stringFields)
	}

	return nil
}

// Fields returns the fields in declaration order. The returned slice is a
// copy; mutating it does not affect the specification.
func (s *Spec) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)

	return fields
}

// Lookup returns the field with the given key.
func (s *Spec) Lookup(key string) (Field, bool) {
	idx, ok := s.byKey[key]
	if !ok {
		return Field{}, false
	}

	return s.fields[idx], true
}

// StringField returns the string-kind field, if any.
func (s *Spec) StringField() (Field, bool) {
	for _, f := range s.fields {
		if f.Kind == KindString {
			return f, true
		}
	}

	return Field{}, false
}

// Len returns the number of fields.
func (s *Spec) Len() int {
	return len(s.fields)
}
