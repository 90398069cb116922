package screen

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestCaptureEncodesHalfScaleJPEG(t *testing.T) {
	c := New(DefaultQuality, zerolog.Nop())
	c.numDisplays = func() int { return 1 }
	c.grab = func(int) (*image.RGBA, error) { return testImage(64, 48), nil }

	encoded, ok := c.Capture()
	require.True(t, ok)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestCaptureTinyDisplayClampsToOnePixel(t *testing.T) {
	c := New(DefaultQuality, zerolog.Nop())
	c.numDisplays = func() int { return 1 }
	c.grab = func(int) (*image.RGBA, error) { return testImage(1, 1), nil }

	encoded, ok := c.Capture()
	require.True(t, ok)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestCaptureNoDisplay(t *testing.T) {
	c := New(DefaultQuality, zerolog.Nop())
	c.numDisplays = func() int { return 0 }
	c.grab = func(int) (*image.RGBA, error) {
		t.Fatal("grab must not run without a display")
		return nil, nil
	}

	encoded, ok := c.Capture()
	assert.False(t, ok)
	assert.Empty(t, encoded)
}

func TestCaptureGrabFailure(t *testing.T) {
	c := New(DefaultQuality, zerolog.Nop())
	c.numDisplays = func() int { return 1 }
	c.grab = func(int) (*image.RGBA, error) { return nil, errors.New("display locked") }

	encoded, ok := c.Capture()
	assert.False(t, ok)
	assert.Empty(t, encoded)
}

func TestNewDefaultsQuality(t *testing.T) {
	assert.Equal(t, DefaultQuality, New(0, zerolog.Nop()).quality)
	assert.Equal(t, DefaultQuality, New(-5, zerolog.Nop()).quality)
	assert.Equal(t, 80, New(80, zerolog.Nop()).quality)
}
