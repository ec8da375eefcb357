package export

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/joseph-ayodele/gemmascan/internal/batch"
	"github.com/joseph-ayodele/gemmascan/internal/extract"
)

// Table is a rectangular projection ready for CSV or XLSX serialization.
type Table struct {
	Header []string
	Rows   [][]string
}

// FlatTable projects the flat results: one row per work unit, in processing
// order. The second column carries the raw model text, which is the
// description in Describe mode and the unstructured extraction text (or the
// error text for failed units) otherwise.
func FlatTable(rs *batch.ResultSet) Table {
	t := Table{Header: []string{"Filename", "Description"}}
	for _, r := range rs.Results {
		t.Rows = append(t.Rows, []string{r.Label, r.Text})
	}
	return t
}

// StructuredTable unifies records with differing field sets. The column set
// is the union of keys across all records, sorted lexicographically, with
// filename always included; missing cells render as empty strings. Two
// passes — collect keys, then project — recomputed fresh per export, never
// carried over from a previous run. Zero records yield a header-only table.
func StructuredTable(rs *batch.ResultSet) Table {
	keys := map[string]struct{}{extract.FilenameKey: {}}
	for _, rec := range rs.Structured {
		for k := range rec {
			keys[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	t := Table{Header: header}
	for _, rec := range rs.Structured {
		row := make([]string, len(header))
		for i, k := range header {
			if v, ok := rec[k]; ok {
				row[i] = renderValue(v)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// renderValue flattens a recovered JSON value into one cell. Nested values
// render as compact JSON.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
