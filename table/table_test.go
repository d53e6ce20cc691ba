package table

import (
	"encoding/binary"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sectable/errs"
	"github.com/arloliu/sectable/spec"
)

// rawSection describes one test record for buildTable.
type rawSection struct {
	name            string
	virtualSize     uint32
	virtualAddress  uint32
	characteristics uint32
}

// buildTable serializes sections into a raw table buffer in wire format.
func buildTable(t *testing.T, sections ...rawSection) []byte {
	t.Helper()

	buf := make([]byte, len(sections)*EntrySize)
	for i, s := range sections {
		record := buf[i*EntrySize : (i+1)*EntrySize]
		require.LessOrEqual(t, len(s.name), 8, "section name must fit the 8-byte field")
		copy(record[0:8], s.name)
		binary.LittleEndian.PutUint32(record[8:12], s.virtualSize)
		binary.LittleEndian.PutUint32(record[12:16], s.virtualAddress)
		binary.LittleEndian.PutUint32(record[36:40], s.characteristics)
	}

	return buf
}

func decodedTable(t *testing.T, sections ...rawSection) *Table {
	t.Helper()

	tbl, err := New(buildTable(t, sections...), len(sections), 0x200)
	require.NoError(t, err)
	require.NoError(t, tbl.Decode())

	return tbl
}

func TestNew_Validation(t *testing.T) {
	buf := make([]byte, EntrySize)

	t.Run("negative entry count", func(t *testing.T) {
		_, err := New(buf, -1, 0)
		require.ErrorIs(t, err, errs.ErrInvalidEntryCount)
	})

	t.Run("entry count over cap", func(t *testing.T) {
		_, err := New(buf, DefaultMaxEntryCount+1, 0)
		require.ErrorIs(t, err, errs.ErrTooManyEntries)
	})

	t.Run("entry count over custom cap", func(t *testing.T) {
		_, err := New(make([]byte, 4*EntrySize), 4, 0, WithMaxEntryCount(2))
		require.ErrorIs(t, err, errs.ErrTooManyEntries)
	})

	t.Run("buffer too small", func(t *testing.T) {
		_, err := New(buf, 2, 0)
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})

	t.Run("zero entries", func(t *testing.T) {
		tbl, err := New(nil, 0, 0)
		require.NoError(t, err)
		require.NoError(t, tbl.Decode())
		require.Equal(t, 0, tbl.SectionCount())
		require.Equal(t, 0, tbl.Size())
	})
}

func TestNew_InvalidOptions(t *testing.T) {
	buf := make([]byte, EntrySize)

	_, err := New(buf, 1, 0, WithSpec(nil))
	require.Error(t, err)

	_, err = New(buf, 1, 0, WithLogger(nil))
	require.Error(t, err)

	_, err = New(buf, 1, 0, WithMaxEntryCount(0))
	require.Error(t, err)

	_, err = New(buf, 1, 0, WithEndianEngine(nil))
	require.Error(t, err)
}

func TestNew_ClonesBuffer(t *testing.T) {
	buf := buildTable(t, rawSection{name: ".text"})

	tbl, err := New(buf, 1, 0)
	require.NoError(t, err)

	// Mutating the caller's buffer after construction must not leak in.
	copy(buf[0:8], ".mutated")
	require.NoError(t, tbl.Decode())

	header, err := tbl.Header(1)
	require.NoError(t, err)
	require.Equal(t, ".text", header.Name())
}

func TestQueriesBeforeDecode(t *testing.T) {
	tbl, err := New(buildTable(t, rawSection{name: ".text"}), 1, 0)
	require.NoError(t, err)

	_, err = tbl.Headers()
	require.ErrorIs(t, err, errs.ErrNotDecoded)

	_, err = tbl.Header(1)
	require.ErrorIs(t, err, errs.ErrNotDecoded)

	_, _, err = tbl.HeaderByName(".text")
	require.ErrorIs(t, err, errs.ErrNotDecoded)

	_, err = tbl.HeaderNamed(".text")
	require.ErrorIs(t, err, errs.ErrNotDecoded)

	// All yields nothing rather than partial results.
	for range tbl.All() {
		t.Fatal("iterator must not yield before decode")
	}

	// Construction-derived accessors do not depend on decode state.
	require.Equal(t, 1, tbl.SectionCount())
	require.Equal(t, EntrySize, tbl.Size())
}

func TestDecode_RoundTrip(t *testing.T) {
	tbl := decodedTable(t, rawSection{
		name:            ".text\x00\x00\x00",
		virtualSize:     0x00000100,
		characteristics: 0x60000020,
	})

	require.Equal(t, 1, tbl.SectionCount())
	require.Equal(t, EntrySize, tbl.Size())
	require.Equal(t, int64(0x200), tbl.TableOffset())

	header, err := tbl.Header(1)
	require.NoError(t, err)
	require.Equal(t, 1, header.Number())
	require.Equal(t, ".text", header.Name())
	require.Equal(t, int64(0), header.TableRelativeOffset())

	virtualSize, err := header.Field("virtualSize")
	require.NoError(t, err)
	require.Equal(t, uint64(256), virtualSize)

	characteristics, err := header.Field("characteristics")
	require.NoError(t, err)
	require.Equal(t, uint64(0x60000020), characteristics)
}

func TestDecode_Idempotent(t *testing.T) {
	tbl := decodedTable(t, rawSection{name: ".text"})

	require.NoError(t, tbl.Decode())
	require.Equal(t, 1, tbl.SectionCount())
}

func TestDecode_Deterministic(t *testing.T) {
	buf := buildTable(t,
		rawSection{name: ".text", virtualSize: 0x100, characteristics: 0x60000020},
		rawSection{name: ".data", virtualSize: 0x80, characteristics: 0xC0000040},
	)

	decode := func() []Header {
		tbl, err := New(buf, 2, 0x200)
		require.NoError(t, err)
		require.NoError(t, tbl.Decode())
		headers, err := tbl.Headers()
		require.NoError(t, err)

		return headers
	}

	require.Equal(t, decode(), decode())
}

func TestDecode_SpecBoundsRejectedAtDecodeTime(t *testing.T) {
	badSpec, err := spec.Load(strings.NewReader("NAME;Name;0;8\nbroken;Broken;36;8\n"))
	require.NoError(t, err)

	// Construction succeeds; the layout violation surfaces at decode time.
	tbl, err := New(buildTable(t, rawSection{name: ".text"}), 1, 0, WithSpec(badSpec))
	require.NoError(t, err)

	err = tbl.Decode()
	require.ErrorIs(t, err, errs.ErrMalformedRecord)

	// Failure is terminal: queries keep failing and Decode keeps returning
	// the recorded error.
	_, err = tbl.Headers()
	require.ErrorIs(t, err, errs.ErrNotDecoded)
	require.ErrorIs(t, tbl.Decode(), errs.ErrMalformedRecord)
}

func TestDecode_MissingStringField(t *testing.T) {
	badSpec, err := spec.Load(strings.NewReader("onlyInt;Only Int;0;4\n"))
	require.NoError(t, err)

	tbl, err := New(buildTable(t, rawSection{name: ".text"}), 1, 0, WithSpec(badSpec))
	require.NoError(t, err)

	require.ErrorIs(t, tbl.Decode(), errs.ErrSpecFormat)
}

func TestHeader_Numbering(t *testing.T) {
	tbl := decodedTable(t,
		rawSection{name: ".text"},
		rawSection{name: ".data"},
		rawSection{name: ".bss"},
	)

	for n := 1; n <= tbl.SectionCount(); n++ {
		header, err := tbl.Header(n)
		require.NoError(t, err)
		require.Equal(t, n, header.Number())
		require.Equal(t, int64((n-1)*EntrySize), header.TableRelativeOffset())
	}

	_, err := tbl.Header(0)
	require.ErrorIs(t, err, errs.ErrInvalidSectionNumber)

	_, err = tbl.Header(tbl.SectionCount() + 1)
	require.ErrorIs(t, err, errs.ErrInvalidSectionNumber)
}

func TestHeaderByName_FirstMatchPolicy(t *testing.T) {
	tbl := decodedTable(t,
		rawSection{name: ".text", virtualSize: 0x100},
		rawSection{name: ".dup", virtualSize: 0x200},
		rawSection{name: ".dup", virtualSize: 0x300},
	)

	header, found, err := tbl.HeaderByName(".dup")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, header.Number())

	named, err := tbl.HeaderNamed(".dup")
	require.NoError(t, err)
	require.Equal(t, 2, named.Number())
}

func TestHeaderByName_Absent(t *testing.T) {
	tbl := decodedTable(t, rawSection{name: ".text"})

	_, found, err := tbl.HeaderByName(".missing")
	require.NoError(t, err)
	require.False(t, found)

	_, err = tbl.HeaderNamed(".missing")
	require.ErrorIs(t, err, errs.ErrSectionNotFound)
}

func TestHeaders_DefensiveCopy(t *testing.T) {
	tbl := decodedTable(t, rawSection{name: ".text"}, rawSection{name: ".data"})

	headers, err := tbl.Headers()
	require.NoError(t, err)
	headers[0] = Header{}

	fresh, err := tbl.Headers()
	require.NoError(t, err)
	require.Equal(t, ".text", fresh[0].Name())
}

func TestAll_TableOrder(t *testing.T) {
	tbl := decodedTable(t,
		rawSection{name: ".text"},
		rawSection{name: ".data"},
	)

	var numbers []int
	var names []string
	for n, h := range tbl.All() {
		numbers = append(numbers, n)
		names = append(names, h.Name())
	}

	require.Equal(t, []int{1, 2}, numbers)
	require.Equal(t, []string{".text", ".data"}, names)
}

func TestFingerprint_StableAcrossConstructions(t *testing.T) {
	buf := buildTable(t, rawSection{name: ".text", virtualSize: 0x100})

	t1, err := New(buf, 1, 0)
	require.NoError(t, err)
	t2, err := New(buf, 1, 0x400)
	require.NoError(t, err)

	require.Equal(t, t1.Fingerprint(), t2.Fingerprint())

	other, err := New(buildTable(t, rawSection{name: ".data"}), 1, 0)
	require.NoError(t, err)
	require.NotEqual(t, t1.Fingerprint(), other.Fingerprint())
}

func TestConcurrentReadsAfterDecode(t *testing.T) {
	tbl := decodedTable(t,
		rawSection{name: ".text", virtualSize: 0x100, characteristics: 0x60000020},
		rawSection{name: ".data", virtualSize: 0x80},
	)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				headers, err := tbl.Headers()
				require.NoError(t, err)
				require.Len(t, headers, 2)

				header, err := tbl.HeaderNamed(".text")
				require.NoError(t, err)
				require.Equal(t, 1, header.Number())
			}
		}()
	}
	wg.Wait()
}

func BenchmarkDecode(b *testing.B) {
	sections := make([]rawSection, 16)
	for i := range sections {
		sections[i] = rawSection{name: ".sect", virtualSize: uint32(i) * 0x1000, characteristics: 0x40000040}
	}

	buf := make([]byte, len(sections)*EntrySize)
	for i, s := range sections {
		record := buf[i*EntrySize : (i+1)*EntrySize]
		copy(record[0:8], s.name)
		binary.LittleEndian.PutUint32(record[8:12], s.virtualSize)
		binary.LittleEndian.PutUint32(record[36:40], s.characteristics)
	}

	b.ResetTimer()
	for b.Loop() {
		tbl, err := New(buf, len(sections), 0)
		if err != nil {
			b.Fatal(err)
		}
		if err := tbl.Decode(); err != nil {
			b.Fatal(err)
		}
	}
}
