package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sectable/errs"
)

func TestHeader_FieldNotFound(t *testing.T) {
	tbl := decodedTable(t, rawSection{name: ".text"})

	header, err := tbl.Header(1)
	require.NoError(t, err)

	_, err = header.Field("noSuchKey")
	require.ErrorIs(t, err, errs.ErrFieldNotFound)

	// The string field is not part of the integer map.
	_, err = header.Field("NAME")
	require.ErrorIs(t, err, errs.ErrFieldNotFound)
}

func TestHeader_FieldsDefensiveCopy(t *testing.T) {
	tbl := decodedTable(t, rawSection{name: ".text", virtualSize: 0x100})

	header, err := tbl.Header(1)
	require.NoError(t, err)

	fields := header.Fields()
	fields["virtualSize"] = 999

	value, err := header.Field("virtualSize")
	require.NoError(t, err)
	require.Equal(t, uint64(0x100), value)
}
