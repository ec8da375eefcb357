package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/joseph-ayodele/gemmascan/constants"
)

// Config for the Rasterizer.
type Config struct {
	Pdftoppm    string  // pdftoppm binary, default "pdftoppm"
	RenderScale float64 // linear magnification over the 72 DPI base, default 1.5
}

// Rasterizer turns source documents into ordered page sequences. PDFs render
// through pdftoppm; plain images decode in process.
type Rasterizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRasterizer(cfg Config, logger *slog.Logger) *Rasterizer {
	return NewRasterizerWithRunner(cfg, execRunner{}, logger)
}

// NewRasterizerWithRunner is the test seam for the pdftoppm dependency.
func NewRasterizerWithRunner(cfg Config, r Runner, logger *slog.Logger) *Rasterizer {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.RenderScale <= 0 {
		cfg.RenderScale = constants.DefaultRenderScale
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rasterizer{cfg: cfg, runner: r, logger: logger}
}

// Rasterized is one document's ordered pages plus their on-disk lifetime.
type Rasterized struct {
	Pages  []Page
	tmpDir string
}

// Cleanup removes the rendered page files. Safe to call for image documents.
func (r *Rasterized) Cleanup() {
	if r.tmpDir == "" {
		return
	}
	if err := os.RemoveAll(r.tmpDir); err != nil {
		slog.Warn("raster cleanup failed", "dir", r.tmpDir, "error", err)
	}
}

// Rasterize turns a document into its ordered pages. Images yield exactly
// one page at index 0. With firstOnly, only a PDF's first page is rendered;
// the caller still learns the true page count from PageCount.
func (r *Rasterizer) Rasterize(ctx context.Context, doc SourceDocument, firstOnly bool) (*Rasterized, error) {
	if doc.Kind == constants.KindPDF {
		return r.rasterizePDF(ctx, doc, firstOnly)
	}
	return rasterizeImage(doc)
}

func rasterizeImage(doc SourceDocument) (*Rasterized, error) {
	img, _, err := image.Decode(bytes.NewReader(doc.Data))
	if err != nil {
		return nil, &ParseError{Name: doc.Name, Cause: err}
	}
	return &Rasterized{Pages: []Page{NewImagePage(0, doc.Name, img)}}, nil
}

func (r *Rasterizer) rasterizePDF(ctx context.Context, doc SourceDocument, firstOnly bool) (*Rasterized, error) {
	tmpDir, err := os.MkdirTemp("", "gemmascan-pp-*")
	if err != nil {
		return nil, err
	}
	src := filepath.Join(tmpDir, "src.pdf")
	if err := os.WriteFile(src, doc.Data, 0o600); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, err
	}

	dpi := int(72 * r.cfg.RenderScale)
	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(dpi), "-png"}
	if firstOnly {
		args = append(args, "-f", "1", "-l", "1")
	}
	args = append(args, src, prefix)

	// pdftoppm -r 108 -png [-f 1 -l 1] <tmp/src.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, args...)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, &ParseError{Name: doc.Name, Cause: fmt.Errorf("pdftoppm: %v: %s", err, truncate(string(errb), 512))}
	}

	// collect generated pngs (page-1.png, page-2.png, ...); pdftoppm zero-pads
	// page numbers so lexical order is page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		_ = os.RemoveAll(tmpDir)
		return nil, &ParseError{Name: doc.Name, Cause: fmt.Errorf("pdftoppm produced no pages")}
	}

	pages := make([]Page, 0, len(matches))
	for i, m := range matches {
		pages = append(pages, Page{Index: i, Label: PageLabel(doc.Name, i, len(matches)), path: m})
	}
	r.logger.Debug("raster.pdf.ok", "doc", doc.Name, "pages", len(pages), "dpi", dpi)
	return &Rasterized{Pages: pages, tmpDir: tmpDir}, nil
}

// PageLabel derives the display label for page i of a document that rendered
// total pages. Single-page renders keep the bare document name.
func PageLabel(name string, i, total int) string {
	if total <= 1 {
		return name
	}
	return fmt.Sprintf("%s (Page %d)", name, i+1)
}
