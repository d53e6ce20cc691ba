package table

import (
	"fmt"
	"strings"

	"github.com/arloliu/sectable/endian"
	"github.com/arloliu/sectable/errs"
	"github.com/arloliu/sectable/spec"
)

// namePadding holds the trailing characters trimmed from the string field:
// NUL padding plus whitespace. Leading characters are never trimmed.
const namePadding = "\x00 \t\r\n"

// decodeRecord decodes the record at entryIndex from the table buffer.
//
// It slices exactly EntrySize bytes starting at entryIndex*EntrySize and reads
// every specification field from that slice: integer fields as variable-width
// unsigned values, the string field as trimmed UTF-8.
func decodeRecord(buf []byte, entryIndex int, s *spec.Spec, engine endian.EndianEngine) (Header, error) {
	start := entryIndex * EntrySize
	end := start + EntrySize
	if start < 0 || end > len(buf) {
		return Header{}, fmt.Errorf("%w: entry %d needs bytes [%d, %d), buffer has %d",
			errs.ErrMalformedRecord, entryIndex+1, start, end, len(buf))
	}

	record := buf[start:end]
	header := Header{
		number:              entryIndex + 1,
		tableRelativeOffset: int64(start),
		fields:              make(map[string]uint64, s.Len()),
	}

	for _, f := range s.Fields() {
		if f.Offset+f.Length > EntrySize {
			return Header{}, fmt.Errorf("%w: field %q range [%d, %d) exceeds entry size %d",
				errs.ErrMalformedRecord, f.Key, f.Offset, f.Offset+f.Length, EntrySize)
		}

		raw := record[f.Offset : f.Offset+f.Length]

		switch f.Kind {
		case spec.KindString:
			header.name = strings.TrimRight(string(raw), namePadding)
		case spec.KindInteger:
			value, err := endian.Uint(engine, raw)
			if err != nil {
				return Header{}, fmt.Errorf("%w: field %q: %s", errs.ErrMalformedRecord, f.Key, err)
			}
			header.fields[f.Key] = value
		}
	}

	return header, nil
}
