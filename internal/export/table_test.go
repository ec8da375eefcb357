package export

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/gemmascan/internal/batch"
	"github.com/joseph-ayodele/gemmascan/internal/extract"
)

func record(label string, kv map[string]any) extract.Record {
	rec := extract.NewRecord(label)
	rec.Merge(kv)
	return rec
}

func TestFlatTable(t *testing.T) {
	rs := &batch.ResultSet{
		Results: []batch.Result{
			{Label: "a.png", Text: "a yellow receipt"},
			{Label: "b.pdf (Page 1)", Text: "cannot parse document", Err: errors.New("cannot parse document")},
		},
	}
	got := FlatTable(rs)
	assert.Equal(t, []string{"Filename", "Description"}, got.Header)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []string{"a.png", "a yellow receipt"}, got.Rows[0])
	assert.Equal(t, []string{"b.pdf (Page 1)", "cannot parse document"}, got.Rows[1])
}

func TestStructuredTableUnionSortedWithMissingCells(t *testing.T) {
	rs := &batch.ResultSet{
		Structured: []extract.Record{
			record("a.png", map[string]any{"Total": "9.99"}),
			record("b.png", map[string]any{"Date": "2024-01-01", "Total": "1.00"}),
		},
	}
	got := StructuredTable(rs)
	assert.Equal(t, []string{"Date", "Total", "filename"}, got.Header)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []string{"", "9.99", "a.png"}, got.Rows[0])
	assert.Equal(t, []string{"2024-01-01", "1.00", "b.png"}, got.Rows[1])
}

func TestStructuredTableZeroRecordsIsHeaderOnly(t *testing.T) {
	got := StructuredTable(&batch.ResultSet{})
	assert.Equal(t, []string{"filename"}, got.Header)
	assert.Empty(t, got.Rows)
}

func TestStructuredTableRendersScalarAndNestedValues(t *testing.T) {
	rs := &batch.ResultSet{
		Structured: []extract.Record{
			record("a.png", map[string]any{
				"amount": 12.5,
				"paid":   true,
				"items":  map[string]any{"count": float64(3)},
			}),
		},
	}
	got := StructuredTable(rs)
	assert.Equal(t, []string{"amount", "filename", "items", "paid"}, got.Header)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "12.5", got.Rows[0][0])
	assert.Equal(t, `{"count":3}`, got.Rows[0][2])
	assert.Equal(t, "true", got.Rows[0][3])
}
