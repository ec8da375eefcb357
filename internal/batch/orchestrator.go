package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/gemmascan/constants"
	"github.com/joseph-ayodele/gemmascan/internal/common"
	"github.com/joseph-ayodele/gemmascan/internal/document"
	"github.com/joseph-ayodele/gemmascan/internal/extract"
	"github.com/joseph-ayodele/gemmascan/internal/imaging"
	"github.com/joseph-ayodele/gemmascan/internal/vision"
)

// Rasterizer is the document-to-pages dependency.
type Rasterizer interface {
	PageCount(doc document.SourceDocument) (int, error)
	Rasterize(ctx context.Context, doc document.SourceDocument, firstOnly bool) (*document.Rasterized, error)
}

// Request describes one batch run.
type Request struct {
	Documents     []document.SourceDocument
	Fields        []string // normalized field names; empty selects Describe mode
	FirstPageOnly bool     // render only the first PDF page, warn about the rest
	MaxDimension  int
	OnProgress    ProgressFunc
}

// Orchestrator drives rasterizer, normalizer, model client and extractor
// across all documents of a run, strictly sequentially. The model call is
// the only blocking step and blocks the whole pipeline, which keeps result
// ordering deterministic and avoids overlapping load on the model server.
type Orchestrator struct {
	raster  Rasterizer
	invoker vision.Invoker
	logger  *slog.Logger
}

func New(raster Rasterizer, invoker vision.Invoker, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{raster: raster, invoker: invoker, logger: logger}
}

// Run processes every document and returns the accumulated ResultSet.
// Unit failures are recorded and never abort the run; only context
// cancellation does, discarding the partial set.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*ResultSet, error) {
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	start := time.Now()

	fieldsMode := len(req.Fields) > 0
	prompt := vision.DescribePrompt
	var schema map[string]any
	if fieldsMode {
		prompt = vision.FieldsPrompt(req.Fields)
		schema = vision.BuildFieldsSchema(req.Fields)
	}

	report := func(p Progress) {
		if req.OnProgress != nil {
			req.OnProgress(p)
		}
	}

	report(Progress{Status: StatusCounting})

	// Counting pass: fix the progress denominator before any model call.
	// Images weigh 1; PDFs weigh their page count in per-page mode. A PDF
	// whose count fails keeps weight 1. The renderer may disagree with the
	// counted budget on damaged files, so the processing loop reconciles
	// the counter against counts[i] after each document.
	counts := make([]int, len(req.Documents))
	total := 0
	for i, doc := range req.Documents {
		counts[i] = 1
		if doc.Kind == constants.KindPDF && !req.FirstPageOnly {
			if n, err := o.raster.PageCount(doc); err == nil && n > 0 {
				counts[i] = n
			}
		}
		total += counts[i]
	}

	o.logger.Info("batch.run.start",
		"run_id", runID,
		"documents", len(req.Documents),
		"units", total,
		"fields_mode", fieldsMode,
	)

	rs := &ResultSet{RunID: runID}
	done := 0

	for i, doc := range req.Documents {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("batch.run.cancelled", "run_id", runID, "done", done, "total", total)
			return nil, err
		}
		floor := done

		rz, err := o.raster.Rasterize(ctx, doc, req.FirstPageOnly)
		if err != nil {
			// one synthetic result consumes all of this document's counted
			// units, so progress still reaches 100%
			rs.add(Result{Label: doc.Name, Text: err.Error(), Err: err})
			done = floor + counts[i]
			o.logger.Error("batch.unit.err",
				"run_id", runID, "label", doc.Name, "error", err,
				"done", done, "total", total,
			)
			report(Progress{Status: StatusProcessing, Done: done, Total: total, Label: doc.Name})
			continue
		}

		if req.FirstPageOnly && doc.Kind == constants.KindPDF {
			if n, cntErr := o.raster.PageCount(doc); cntErr == nil && n > len(rz.Pages) {
				o.logger.Warn("batch.pages.skipped",
					"run_id", runID, "doc", doc.Name, "skipped", n-len(rz.Pages))
			}
		}

		for _, page := range rz.Pages {
			unitStart := time.Now()
			res := o.processUnit(ctx, page, prompt, req.MaxDimension, req.Fields, schema)
			rs.add(res)
			done++
			if done > floor+counts[i] {
				done = floor + counts[i]
			}
			if res.Err != nil {
				o.logger.Error("batch.unit.err",
					"run_id", runID, "label", res.Label, "error", res.Err,
					"done", done, "total", total,
				)
			} else {
				o.logger.Info("batch.unit.ok",
					"run_id", runID, "label", res.Label,
					"done", done, "total", total,
					"elapsed_ms", time.Since(unitStart).Milliseconds(),
				)
			}
			report(Progress{Status: StatusProcessing, Done: done, Total: total, Label: page.Label})
		}
		// settle the document on its budgeted units whether the renderer
		// produced more pages than counted or fewer
		done = floor + counts[i]
		rz.Cleanup()
	}

	report(Progress{Status: StatusComplete, Done: done, Total: total})
	o.logger.Info("batch.run.ok",
		"run_id", runID,
		"results", len(rs.Results),
		"structured", len(rs.Structured),
		"failed", rs.Failed(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rs, nil
}

func (o *Orchestrator) processUnit(ctx context.Context, page document.Page, prompt string, maxDim int, fields []string, schema map[string]any) Result {
	img, err := page.Image()
	if err != nil {
		return Result{Label: page.Label, Text: err.Error(), Err: err}
	}
	encoded, err := imaging.Normalize(img, maxDim)
	if err != nil {
		encErr := &imaging.EncodeError{Label: page.Label, Cause: err}
		return Result{Label: page.Label, Text: encErr.Error(), Err: encErr}
	}
	text, err := o.invoker.Invoke(ctx, prompt, encoded)
	if err != nil {
		return Result{Label: page.Label, Text: err.Error(), Err: err}
	}

	res := Result{Label: page.Label, Text: text}
	if len(fields) > 0 {
		rec := extract.NewRecord(page.Label)
		rec.Merge(extract.Extract(text, fields))
		if rec.Structured() {
			res.Record = rec
			if vErr := vision.ValidateRecord(schema, rec); vErr != nil {
				o.logger.Warn("batch.record.schema_mismatch", "label", page.Label, "error", vErr)
			} else {
				res.SchemaOK = true
			}
		}
	}
	return res
}
