// Package sectable decodes the section table of a portable executable binary:
// a contiguous array of fixed-size 40-byte records, each describing one
// logical section (name, memory layout, file layout, characteristics flags).
//
// Record layout is driven by a declarative field specification rather than
// hard-coded struct offsets, so the decoder never changes when the layout
// description does. Decoded tables expose an ordered, immutable header
// sequence with lookup by section number or name, plus a deterministic text
// renderer that resolves the characteristics bitmask into flag names.
//
// # Basic Usage
//
// Decoding a raw table buffer:
//
//	import "github.com/arloliu/sectable"
//
//	t, err := sectable.Decode(raw, entryCount, tableOffset)
//	if err != nil {
//	    return err
//	}
//
//	header, err := t.HeaderNamed(".text")
//	if err != nil {
//	    return err
//	}
//	size, _ := header.Field("virtualSize")
//
// Reading straight from an executable stream:
//
//	f, _ := os.Open("program.exe")
//	defer f.Close()
//
//	t, err := sectable.Read(f)
//	if err != nil {
//	    return err
//	}
//	report, err := sectable.Render(t)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the table and
// pefile packages, simplifying the most common use cases. For fine-grained
// control (custom specifications, flag dictionaries, entry count caps, or
// logging), use the table, spec, and flagdict packages directly.
package sectable

import (
	"io"

	"github.com/arloliu/sectable/pefile"
	"github.com/arloliu/sectable/table"
)

// EntrySize is the fixed size of one section table record in bytes.
const EntrySize = table.EntrySize

// Decode constructs a table over the raw section table bytes and decodes it.
//
// Parameters:
//   - data: Raw table bytes, at least entryCount*EntrySize long
//   - entryCount: Number of records in the table
//   - tableOffset: Absolute byte offset of the table within the source file
//   - opts: Optional table configuration
//
// Returns:
//   - *table.Table: Decoded table ready for queries
//   - error: Construction or decode errors (see the errs package)
func Decode(data []byte, entryCount int, tableOffset int64, opts ...table.Option) (*table.Table, error) {
	t, err := table.New(data, entryCount, tableOffset, opts...)
	if err != nil {
		return nil, err
	}

	if err := t.Decode(); err != nil {
		return nil, err
	}

	return t, nil
}

// Read locates the section table in an executable stream, reads it, and
// decodes it.
//
// Parameters:
//   - r: Executable byte stream
//   - opts: Optional table configuration
//
// Returns:
//   - *table.Table: Decoded table ready for queries
//   - error: Locator, construction, or decode errors
func Read(r io.ReaderAt, opts ...table.Option) (*table.Table, error) {
	t, err := pefile.ReadSectionTable(r, opts...)
	if err != nil {
		return nil, err
	}

	if err := t.Decode(); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders the table report with the default renderer: records in
// table order, fields in specification order, characteristics resolved
// through the default flag dictionary.
//
// Returns:
//   - string: Rendered report
//   - error: errs.ErrNotDecoded when the table has not been decoded
func Render(t *table.Table) (string, error) {
	renderer, err := table.NewRenderer()
	if err != nil {
		return "", err
	}

	return renderer.Render(t)
}
