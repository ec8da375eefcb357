package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSVHasBOMAndReadsBack(t *testing.T) {
	table := Table{
		Header: []string{"Filename", "Description"},
		Rows: [][]string{
			{"a.png", "first, with a comma"},
			{"b.png", "line\nbreak"},
		},
	}
	b, err := EncodeCSV(table)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, BOM))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(b, BOM)))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Filename", "Description"}, rows[0])
	assert.Equal(t, "first, with a comma", rows[1][1])
	assert.Equal(t, "line\nbreak", rows[2][1])
}

func TestWriterHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTable(Table{Header: []string{"filename"}}))
	w.Flush()
	require.NoError(t, w.Error())

	assert.Equal(t, "filename\n", buf.String())
}
