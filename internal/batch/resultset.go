package batch

import "github.com/joseph-ayodele/gemmascan/internal/extract"

// Result is one work unit's outcome: the page label, the raw model text
// (or the error text for failed units), and the unit error, nil on success.
type Result struct {
	Label    string
	Text     string
	Err      error
	Record   extract.Record // non-nil when structuring recovered real fields
	SchemaOK bool           // advisory schema verdict for Record
}

// ResultSet accumulates one batch run in processing order. Fresh per run,
// owned and mutated only by the orchestrator, never merged across runs.
type ResultSet struct {
	RunID      string
	Results    []Result
	Structured []extract.Record
}

func (rs *ResultSet) add(r Result) {
	rs.Results = append(rs.Results, r)
	if r.Record != nil {
		rs.Structured = append(rs.Structured, r.Record)
	}
}

// Failed counts units that recorded an error.
func (rs *ResultSet) Failed() int {
	n := 0
	for _, r := range rs.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
