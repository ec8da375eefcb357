package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/gemmascan/constants"
	"github.com/joseph-ayodele/gemmascan/internal/batch"
	"github.com/joseph-ayodele/gemmascan/internal/document"
	"github.com/joseph-ayodele/gemmascan/internal/export"
	"github.com/joseph-ayodele/gemmascan/internal/history"
	"github.com/joseph-ayodele/gemmascan/internal/ingest"
	"github.com/joseph-ayodele/gemmascan/internal/vision/ollama"
)

// runBatch is the shared driver behind describe and extract: collect
// documents, preflight the model endpoint, run the orchestrator, write
// exports, optionally archive the run.
func runBatch(cmd *cobra.Command, opts *cliOptions, paths, fields []string, firstPageOnly, writeXLSX bool) error {
	ctx := cmd.Context()
	logger := slog.Default()
	cfg := opts.cfg

	docs, failures, stats, err := ingest.CollectDocuments(paths, nil, true)
	if err != nil {
		return err
	}
	for _, f := range failures {
		logger.Warn("ingest.file.failed", "path", f.Path, "error", f.Err)
	}
	logger.Info("ingest.ok",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"loaded", stats.Loaded,
		"failed", stats.Failed,
	)
	if len(docs) == 0 {
		return fmt.Errorf("no supported documents found under %s", strings.Join(paths, ", "))
	}

	client := ollama.NewClient(ollama.Config{
		BaseURL: cfg.Model.BaseURL,
		Model:   cfg.Model.Name,
		Timeout: cfg.Model.Timeout,
	}, logger)
	if err := client.Ping(ctx); err != nil {
		// reported once; the batch is still attempted unit by unit
		logger.Warn("model endpoint unreachable, attempting batch anyway",
			"base_url", cfg.Model.BaseURL, "error", err)
	}

	raster := document.NewRasterizer(document.Config{
		Pdftoppm:    cfg.Pipeline.Pdftoppm,
		RenderScale: cfg.Pipeline.RenderScale,
	}, logger)
	orch := batch.New(raster, client, logger)

	mode := "describe"
	if len(fields) > 0 {
		mode = "extract"
	}

	startedAt := time.Now()
	var total int
	rs, err := orch.Run(ctx, batch.Request{
		Documents:     docs,
		Fields:        fields,
		FirstPageOnly: firstPageOnly,
		MaxDimension:  cfg.Pipeline.MaxDimension,
		OnProgress: func(p batch.Progress) {
			total = p.Total
			if p.Status == batch.StatusProcessing {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s\n", p.Done, p.Total, p.Label)
			}
		},
	})
	if err != nil {
		return err
	}

	now := time.Now()
	flat := export.FlatTable(rs)
	flatPath := filepath.Join(cfg.Export.OutDir, export.BuildFilename(export.FlatPrefix, now))
	if err := writeCSV(flatPath, flat); err != nil {
		return err
	}
	logger.Info("export.csv.ok", "path", flatPath, "rows", len(flat.Rows))

	structured := export.StructuredTable(rs)
	structuredPath := ""
	if mode == "extract" && len(rs.Structured) > 0 {
		structuredPath = filepath.Join(cfg.Export.OutDir, export.BuildFilename(export.StructuredPrefix, now))
		if err := writeCSV(structuredPath, structured); err != nil {
			return err
		}
		logger.Info("export.csv.ok", "path", structuredPath, "rows", len(structured.Rows))
	}

	xlsxPath := ""
	if writeXLSX {
		b, err := export.WorkbookBytes(flat, structured, logger)
		if err != nil {
			return err
		}
		xlsxPath = filepath.Join(cfg.Export.OutDir, export.BuildXLSXFilename("gemmascan", now))
		if err := os.WriteFile(xlsxPath, b, 0o644); err != nil {
			return err
		}
	}

	if cfg.History.DSN != "" {
		archiveRun(cmd, cfg.History.DSN, history.Run{
			ID:          rs.RunID,
			Mode:        mode,
			Model:       cfg.Model.Name,
			StartedAt:   startedAt,
			FinishedAt:  time.Now(),
			TotalUnits:  total,
			FailedUnits: rs.Failed(),
			Status:      constants.RunStatusComplete,
		}, rs)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Batch complete!\n")
	fmt.Fprintf(out, "- Documents: %d\n", len(docs))
	fmt.Fprintf(out, "- Work units: %d\n", total)
	fmt.Fprintf(out, "- Failures: %d\n", rs.Failed())
	fmt.Fprintf(out, "- Flat CSV: %s\n", flatPath)
	if mode == "extract" {
		fmt.Fprintf(out, "- Structured records: %d\n", len(rs.Structured))
		if structuredPath != "" {
			fmt.Fprintf(out, "- Structured CSV: %s\n", structuredPath)
		} else {
			fmt.Fprintln(out, "- No structured records recovered; structured CSV not written")
		}
	}
	if xlsxPath != "" {
		fmt.Fprintf(out, "- Workbook: %s\n", xlsxPath)
	}
	return nil
}

// archiveRun saves the run to the history store. Best effort: history
// problems never fail a completed batch.
func archiveRun(cmd *cobra.Command, dsn string, run history.Run, rs *batch.ResultSet) {
	logger := slog.Default()
	ctx := cmd.Context()

	store, err := history.Open(ctx, dsn, logger)
	if err != nil {
		logger.Warn("history unavailable, run not archived", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveRun(ctx, run, rs.Results); err != nil {
		logger.Warn("history save failed", "run_id", run.ID, "error", err)
	}
}

func writeCSV(path string, t export.Table) error {
	b, err := export.EncodeCSV(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
