package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	flatSheet       = "Results"
	structuredSheet = "Structured"
)

// WorkbookBytes renders the flat and structured tables as an XLSX workbook
// with one sheet each.
func WorkbookBytes(flat, structured Table, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", flatSheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, flatSheet, flat); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(structuredSheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, structuredSheet, structured); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(flatSheet, "A", "A", 32)
	_ = f.SetColWidth(flatSheet, "B", "B", 80)
	if n := len(structured.Header); n > 0 {
		last, err := excelize.ColumnNumberToName(n)
		if err == nil {
			_ = f.SetColWidth(structuredSheet, "A", last, 24)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"flat_rows", len(flat.Rows),
		"structured_rows", len(structured.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	for i, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
