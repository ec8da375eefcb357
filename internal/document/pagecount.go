package document

import (
	"bytes"
	"fmt"

	rpdf "rsc.io/pdf"

	"github.com/joseph-ayodele/gemmascan/constants"
)

// PageCount reports how many pages doc will produce when processed per-page,
// without rendering anything. Images are always one page.
func (r *Rasterizer) PageCount(doc SourceDocument) (int, error) {
	if doc.Kind == constants.KindPDF {
		return pdfPageCount(doc)
	}
	return 1, nil
}

// pdfPageCount reads the page tree only; no page is materialized.
func pdfPageCount(doc SourceDocument) (n int, err error) {
	// rsc.io/pdf panics on some malformed inputs
	defer func() {
		if p := recover(); p != nil {
			n = 0
			err = &ParseError{Name: doc.Name, Cause: fmt.Errorf("pdf reader: %v", p)}
		}
	}()
	rd, rerr := rpdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if rerr != nil {
		return 0, &ParseError{Name: doc.Name, Cause: rerr}
	}
	return rd.NumPage(), nil
}
