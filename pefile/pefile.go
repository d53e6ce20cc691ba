// Package pefile locates and reads the section table of a portable
// executable byte stream.
//
// The locator performs the minimal header walk needed to find the table: the
// MZ magic, the PE signature offset at 0x3C, the COFF file header, and the
// optional header size. It validates nothing else about the executable; the
// table package bounds-checks the table itself.
package pefile

import (
	"fmt"
	"io"

	"github.com/arloliu/sectable/endian"
	"github.com/arloliu/sectable/errs"
	"github.com/arloliu/sectable/table"
)

const (
	// lfanewOffset is where the 4-byte offset of the PE signature lives.
	lfanewOffset = 0x3C

	// coffHeaderSize is the size of the COFF file header that follows the
	// PE signature.
	coffHeaderSize = 20
)

// Location describes where the section table sits within the source stream.
type Location struct {
	// TableOffset is the absolute byte offset of the table's first record.
	TableOffset int64
	// EntryCount is the number of section records, from the COFF header.
	EntryCount int
}

// LocateSectionTable walks the executable headers in r and returns the
// section table location.
//
// The section table starts immediately after the optional header:
// e_lfanew + 4 (PE signature) + 20 (COFF header) + SizeOfOptionalHeader.
//
// Returns:
//   - Location: Table offset and entry count
//   - error: errs.ErrNotPortableExecutable if the MZ magic or PE signature is
//     missing, or a wrapped read error on truncated input
func LocateSectionTable(r io.ReaderAt) (Location, error) {
	engine := endian.GetLittleEndianEngine()

	var dosMagic [2]byte
	if _, err := r.ReadAt(dosMagic[:], 0); err != nil {
		return Location{}, fmt.Errorf("read dos magic: %w", err)
	}
	if dosMagic[0] != 'M' || dosMagic[1] != 'Z' {
		return Location{}, fmt.Errorf("%w: missing MZ magic", errs.ErrNotPortableExecutable)
	}

	var lfanew [4]byte
	if _, err := r.ReadAt(lfanew[:], lfanewOffset); err != nil {
		return Location{}, fmt.Errorf("read e_lfanew: %w", err)
	}
	sigOffset := int64(engine.Uint32(lfanew[:]))

	var signature [4]byte
	if _, err := r.ReadAt(signature[:], sigOffset); err != nil {
		return Location{}, fmt.Errorf("read pe signature: %w", err)
	}
	if signature != [4]byte{'P', 'E', 0, 0} {
		return Location{}, fmt.Errorf("%w: missing PE signature", errs.ErrNotPortableExecutable)
	}

	var coff [coffHeaderSize]byte
	if _, err := r.ReadAt(coff[:], sigOffset+4); err != nil {
		return Location{}, fmt.Errorf("read coff header: %w", err)
	}
	entryCount := int(engine.Uint16(coff[2:4]))
	optionalHeaderSize := int64(engine.Uint16(coff[16:18]))

	return Location{
		TableOffset: sigOffset + 4 + coffHeaderSize + optionalHeaderSize,
		EntryCount:  entryCount,
	}, nil
}

// ReadSectionTable locates the section table in r, reads exactly
// EntryCount*EntrySize bytes, and constructs a table over them.
//
// The returned table is not yet decoded. The entry count comes from a 16-bit
// wire field, so the read is bounded before table.New applies its cap.
//
// Returns:
//   - *table.Table: Constructed, not-decoded table
//   - error: Locator errors, wrapped read errors on truncated tables, or
//     table.New validation errors
func ReadSectionTable(r io.ReaderAt, opts ...table.Option) (*table.Table, error) {
	loc, err := LocateSectionTable(r)
	if err != nil {
		return nil, err
	}

	// A zero-section image is valid and its table offset may coincide with
	// EOF, where ReadAt reports io.EOF even for an empty read.
	if loc.EntryCount == 0 {
		return table.New(nil, 0, loc.TableOffset, opts...)
	}

	raw := make([]byte, loc.EntryCount*table.EntrySize)
	if _, err := r.ReadAt(raw, loc.TableOffset); err != nil {
		return nil, fmt.Errorf("read section table: %w", err)
	}

	return table.New(raw, loc.EntryCount, loc.TableOffset, opts...)
}
