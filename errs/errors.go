// Package errs defines the sentinel error values shared across sectable packages.
//
// All errors are plain sentinels suitable for errors.Is checks. Call sites attach
// context by wrapping them: fmt.Errorf("%w: entry %d", errs.ErrMalformedRecord, i).
package errs

import "errors"

// Specification and dictionary resource errors. These are fatal to decoding:
// a table whose field specification cannot be loaded never produces headers.
var (
	// ErrSpecFormat indicates the field specification resource is missing a
	// required part or is syntactically malformed.
	ErrSpecFormat = errors.New("malformed field specification")

	// ErrFlagDictFormat indicates the flag dictionary resource is malformed.
	ErrFlagDictFormat = errors.New("malformed flag dictionary")
)

// Table construction and decode errors.
var (
	// ErrBufferTooSmall indicates the raw table buffer cannot hold the declared
	// number of entries.
	ErrBufferTooSmall = errors.New("table buffer too small for entry count")

	// ErrInvalidEntryCount indicates a negative entry count.
	ErrInvalidEntryCount = errors.New("invalid entry count")

	// ErrTooManyEntries indicates the entry count exceeds the configured cap.
	// The count originates from untrusted input and is rejected before any
	// proportional allocation takes place.
	ErrTooManyEntries = errors.New("entry count exceeds maximum")

	// ErrMalformedRecord indicates a record could not be decoded: a specification
	// field reaches outside the fixed-size record, or the buffer is shorter than
	// the record range requires. The error is terminal for the table instance.
	ErrMalformedRecord = errors.New("malformed section table record")
)

// Query errors. These are local to the failing call and leave table state intact.
var (
	// ErrNotDecoded indicates a query was issued before a successful Decode.
	ErrNotDecoded = errors.New("section table not decoded")

	// ErrInvalidSectionNumber indicates a lookup with a section number outside
	// [1, SectionCount].
	ErrInvalidSectionNumber = errors.New("invalid section number")

	// ErrSectionNotFound indicates a lookup by name matched no section.
	ErrSectionNotFound = errors.New("section not found")

	// ErrFieldNotFound indicates a header accessor requested a field key absent
	// from the decoded map. This signals a specification/model mismatch rather
	// than bad user input.
	ErrFieldNotFound = errors.New("field not found in decoded record")
)

// Input locator errors.
var (
	// ErrNotPortableExecutable indicates the input stream does not carry the
	// expected executable signatures.
	ErrNotPortableExecutable = errors.New("not a portable executable")
)
