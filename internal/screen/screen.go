// Package screen captures a compact preview of the primary display.
//
// Encoding contract: captures are JPEG at DefaultQuality, scaled to half the
// display's linear resolution, returned base64 (standard encoding). Consumers
// decode the payload directly, so quality and format changes are breaking.
package screen

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"

	"github.com/kbinani/screenshot"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

// DefaultQuality is the JPEG quality used when none is configured. Chosen to
// keep a half-resolution 4K capture under ~200KB.
const DefaultQuality = 60

// Capturer grabs the primary display and encodes a downsampled JPEG.
// Capture failures are best-effort telemetry losses, never errors.
type Capturer struct {
	quality int
	log     zerolog.Logger

	// Injected for tests; default to the real display functions.
	grab        func(displayIndex int) (*image.RGBA, error)
	numDisplays func() int
}

// New returns a Capturer for the primary display. quality <= 0 selects
// DefaultQuality.
func New(quality int, logger zerolog.Logger) *Capturer {
	if quality <= 0 {
		quality = DefaultQuality
	}
	return &Capturer{
		quality:     quality,
		log:         logger,
		grab:        screenshot.CaptureDisplay,
		numDisplays: screenshot.NumActiveDisplays,
	}
}

// Capture returns the base64-encoded JPEG preview of the primary display.
// A false result means no display was available or encoding failed; the
// condition is logged and the caller proceeds without a screenshot.
func (c *Capturer) Capture() (string, bool) {
	if c.numDisplays() == 0 {
		c.log.Debug().Msg("no active display; skipping screenshot")
		return "", false
	}

	img, err := c.grab(0)
	if err != nil {
		c.log.Warn().Err(err).Msg("display capture failed")
		return "", false
	}

	encoded, err := encodeHalfScale(img, c.quality)
	if err != nil {
		c.log.Warn().Err(err).Msg("screenshot encoding failed")
		return "", false
	}
	return encoded, true
}

// encodeHalfScale downsamples img to half linear resolution and encodes it
// as a base64 JPEG.
func encodeHalfScale(img *image.RGBA, quality int) (string, error) {
	bounds := img.Bounds()
	width := bounds.Dx() / 2
	height := bounds.Dy() / 2
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
