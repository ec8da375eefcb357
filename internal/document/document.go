package document

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/joseph-ayodele/gemmascan/constants"
)

// SourceDocument is one uploaded file. Identity is the original filename;
// the raw bytes live only for the duration of a batch run.
type SourceDocument struct {
	Name string
	Kind constants.FileKind
	Data []byte
}

// Page is one raster image extracted from a source document. Pixel data for
// rendered PDF pages is decoded on demand, so at most one page's raster
// buffer needs to be in memory at a time.
type Page struct {
	Index int
	Label string

	img  image.Image // set for single-image documents
	path string      // rendered PNG on disk, set for PDF pages
}

// NewImagePage builds an in-memory page. Used by image rasterization and as
// a test seam for fake rasterizers.
func NewImagePage(index int, label string, img image.Image) Page {
	return Page{Index: index, Label: label, img: img}
}

// Image returns the page's pixel buffer, decoding from disk if needed.
func (p *Page) Image() (image.Image, error) {
	if p.img != nil {
		return p.img, nil
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open rendered page: %w", err)
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page %s: %w", p.path, err)
	}
	return img, nil
}

// ParseError reports a document whose bytes could not be parsed as the
// declared format. Recovered per-document: one bad file never aborts a batch.
type ParseError struct {
	Name  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse document %q: %v", e.Name, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
