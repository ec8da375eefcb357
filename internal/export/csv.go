package export

import (
	"bytes"
	"encoding/csv"
	"io"
)

// BOM is the UTF-8 byte order mark, written ahead of CSV data for Excel
// compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting tables.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteTable writes the header row followed by every data row.
func (w *Writer) WriteTable(t Table) error {
	if err := w.csv.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// EncodeCSV serializes a table as BOM-prefixed UTF-8 CSV bytes.
func EncodeCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)
	w := NewWriter(&buf)
	if err := w.WriteTable(t); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
