package endian

import "fmt"

// MaxUintWidth is the widest unsigned integer Uint can read, in bytes.
const MaxUintWidth = 8

// Uint reads len(b) bytes as an unsigned integer using the engine's byte order.
//
// The width is taken from the slice length and may be anything from 1 to 8
// bytes. Widths of 1, 2, 4 and 8 take the fast path through the engine's
// fixed-size readers; the remaining widths are zero-extended to 8 bytes first.
//
// Parameters:
//   - engine: Byte order to interpret the slice with
//   - b: Byte slice holding the value (1 to 8 bytes)
//
// Returns:
//   - uint64: Decoded unsigned value
//   - error: Width error if len(b) is 0 or exceeds MaxUintWidth
func Uint(engine EndianEngine, b []byte) (uint64, error) {
	switch len(b) {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(engine.Uint16(b)), nil
	case 4:
		return uint64(engine.Uint32(b)), nil
	case 8:
		return engine.Uint64(b), nil
	case 3, 5, 6, 7:
		// Zero-extend into an 8-byte buffer at the end the engine ignores.
		var tmp [MaxUintWidth]byte
		if engine == GetBigEndianEngine() {
			copy(tmp[MaxUintWidth-len(b):], b)
		} else {
			copy(tmp[:], b)
		}

		return engine.Uint64(tmp[:]), nil
	default:
		return 0, fmt.Errorf("unsupported integer width: %d bytes", len(b))
	}
}
