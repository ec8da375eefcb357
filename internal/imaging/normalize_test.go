package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestNormalizeKeepsImagesWithinBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	out, err := Normalize(img, 1024)
	require.NoError(t, err)

	decoded := decodeJPEG(t, out)
	assert.Equal(t, 640, decoded.Bounds().Dx())
	assert.Equal(t, 480, decoded.Bounds().Dy())
}

func TestNormalizeDownscalesWide(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2048, 1000))
	out, err := Normalize(img, 1024)
	require.NoError(t, err)

	decoded := decodeJPEG(t, out)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 500, decoded.Bounds().Dy())
}

func TestNormalizeDownscalesTall(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 2048))
	out, err := Normalize(img, 1024)
	require.NoError(t, err)

	decoded := decodeJPEG(t, out)
	assert.Equal(t, 500, decoded.Bounds().Dx())
	assert.Equal(t, 1024, decoded.Bounds().Dy())
}

func TestNormalizeRoundsShortSide(t *testing.T) {
	// 3000x2000 -> 1024 x round(2000*1024/3000) = 1024x683
	img := image.NewRGBA(image.Rect(0, 0, 3000, 2000))
	out, err := Normalize(img, 1024)
	require.NoError(t, err)

	decoded := decodeJPEG(t, out)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 683, decoded.Bounds().Dy())
}

func TestNormalizeDefaultsMaxDimension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2048, 2048))
	out, err := Normalize(img, 0)
	require.NoError(t, err)

	decoded := decodeJPEG(t, out)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 1024, decoded.Bounds().Dy())
}
