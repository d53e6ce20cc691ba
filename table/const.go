package table

import "math"

const (
	// EntrySize is the fixed size of one section table record in bytes.
	EntrySize = 40

	// DefaultMaxEntryCount is the default cap on the declared entry count.
	// The count originates from untrusted input; the wire format stores it
	// as an unsigned 16-bit integer, so anything above this is malformed.
	DefaultMaxEntryCount = math.MaxUint16
)
