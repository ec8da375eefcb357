package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/gemmascan/constants"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// fakeRunner plays pdftoppm: it drops rendered page files next to the
// requested prefix.
type fakeRunner struct {
	pages   int
	err     error
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	f.gotArgs = args
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	prefix := args[len(args)-1]
	for i := 1; i <= f.pages; i++ {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
			return nil, nil, err
		}
		if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), buf.Bytes(), 0o644); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}

func TestRasterizeImageSinglePage(t *testing.T) {
	r := NewRasterizer(Config{}, testLogger())
	doc := SourceDocument{Name: "photo.png", Kind: constants.KindImage, Data: pngBytes(t, 10, 10)}

	rz, err := r.Rasterize(context.Background(), doc, false)
	require.NoError(t, err)
	defer rz.Cleanup()

	require.Len(t, rz.Pages, 1)
	assert.Equal(t, 0, rz.Pages[0].Index)
	assert.Equal(t, "photo.png", rz.Pages[0].Label)

	img, err := rz.Pages[0].Image()
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
}

func TestRasterizeImageParseError(t *testing.T) {
	r := NewRasterizer(Config{}, testLogger())
	doc := SourceDocument{Name: "broken.png", Kind: constants.KindImage, Data: []byte("not an image")}

	_, err := r.Rasterize(context.Background(), doc, false)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.png", parseErr.Name)
}

func TestRasterizePDFAllPages(t *testing.T) {
	runner := &fakeRunner{pages: 2}
	r := NewRasterizerWithRunner(Config{RenderScale: 1.5}, runner, testLogger())
	doc := SourceDocument{Name: "scan.pdf", Kind: constants.KindPDF, Data: []byte("%PDF-fake")}

	rz, err := r.Rasterize(context.Background(), doc, false)
	require.NoError(t, err)
	defer rz.Cleanup()

	require.Len(t, rz.Pages, 2)
	assert.Equal(t, "scan.pdf (Page 1)", rz.Pages[0].Label)
	assert.Equal(t, "scan.pdf (Page 2)", rz.Pages[1].Label)
	assert.Equal(t, []string{"-r", "108", "-png"}, runner.gotArgs[:3])

	img, err := rz.Pages[1].Image()
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestRasterizePDFFirstPageOnly(t *testing.T) {
	runner := &fakeRunner{pages: 1}
	r := NewRasterizerWithRunner(Config{}, runner, testLogger())
	doc := SourceDocument{Name: "scan.pdf", Kind: constants.KindPDF, Data: []byte("%PDF-fake")}

	rz, err := r.Rasterize(context.Background(), doc, true)
	require.NoError(t, err)
	defer rz.Cleanup()

	require.Len(t, rz.Pages, 1)
	assert.Equal(t, "scan.pdf", rz.Pages[0].Label)
	assert.Contains(t, runner.gotArgs, "-f")
	assert.Contains(t, runner.gotArgs, "-l")
}

func TestRasterizePDFRunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	r := NewRasterizerWithRunner(Config{}, runner, testLogger())
	doc := SourceDocument{Name: "corrupt.pdf", Kind: constants.KindPDF, Data: []byte("nope")}

	_, err := r.Rasterize(context.Background(), doc, false)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "corrupt.pdf", parseErr.Name)
}

func TestRasterizedCleanupRemovesTempDir(t *testing.T) {
	runner := &fakeRunner{pages: 1}
	r := NewRasterizerWithRunner(Config{}, runner, testLogger())
	doc := SourceDocument{Name: "scan.pdf", Kind: constants.KindPDF, Data: []byte("%PDF-fake")}

	rz, err := r.Rasterize(context.Background(), doc, false)
	require.NoError(t, err)
	require.NotEmpty(t, rz.tmpDir)

	rz.Cleanup()
	_, statErr := os.Stat(rz.tmpDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPageCountImageIsOne(t *testing.T) {
	r := NewRasterizer(Config{}, testLogger())
	n, err := r.PageCount(SourceDocument{Name: "a.png", Kind: constants.KindImage, Data: pngBytes(t, 4, 4)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPageCountGarbagePDF(t *testing.T) {
	r := NewRasterizer(Config{}, testLogger())
	_, err := r.PageCount(SourceDocument{Name: "bad.pdf", Kind: constants.KindPDF, Data: []byte("garbage")})
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "bad.pdf", parseErr.Name)
}

func TestPageLabel(t *testing.T) {
	assert.Equal(t, "a.pdf", PageLabel("a.pdf", 0, 1))
	assert.Equal(t, "a.pdf (Page 1)", PageLabel("a.pdf", 0, 3))
	assert.Equal(t, "a.pdf (Page 3)", PageLabel("a.pdf", 2, 3))
}
