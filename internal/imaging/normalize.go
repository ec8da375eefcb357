package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/joseph-ayodele/gemmascan/constants"
)

// EncodeError reports a page image that could not be re-encoded for
// transport. Recovered per-page by the orchestrator.
type EncodeError struct {
	Label string
	Cause error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode page %q: %v", e.Label, e.Cause)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// Normalize re-encodes img as JPEG, downscaling so the longer side is at
// most maxDimension while preserving aspect ratio. Images already within
// bounds are re-encoded unchanged.
func Normalize(img image.Image, maxDimension int) ([]byte, error) {
	if maxDimension <= 0 {
		maxDimension = constants.DefaultMaxDimension
	}
	b := img.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		img = downscale(img, b.Dx(), b.Dy(), maxDimension)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: constants.DefaultJPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// downscale maps the longer side onto maxDimension exactly;
// newShort = round(short * maxDimension / long).
func downscale(img image.Image, w, h, maxDimension int) image.Image {
	var nw, nh int
	if w >= h {
		nw = maxDimension
		nh = int(math.Round(float64(h) * float64(maxDimension) / float64(w)))
	} else {
		nh = maxDimension
		nw = int(math.Round(float64(w) * float64(maxDimension) / float64(h)))
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
