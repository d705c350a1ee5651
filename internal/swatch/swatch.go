// Package swatch renders color previews as PNG images.
//
// A swatch is split vertically: the left half shows the original color with
// its channels clipped into sRGB, the right half shows the sRGB value the
// engine displays in its place. For colors that fit sRGB both halves match.
package swatch

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

const (
	DefaultWidth  = 128
	DefaultHeight = 64

	// MaxSide bounds each dimension of the rendered image, after scaling.
	MaxSide = 2048
)

// Result contains the encoded swatch.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Render draws a width x height swatch of original beside display and scales
// it by scale. Zero dimensions fall back to the defaults; a scale of 0 or 1
// leaves the size unchanged.
func Render(original colorspace.Color, display colorspace.RGB, width, height int, scale float64) (*Result, error) {
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if width < 2 || height < 1 {
		return nil, fmt.Errorf("invalid swatch size %dx%d: need at least 2x1", width, height)
	}
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %g", scale)
	}
	if scale == 0 {
		scale = 1
	}
	outW, outH := int(float64(width)*scale), int(float64(height)*scale)
	if outW < 2 || outH < 1 || outW > MaxSide || outH > MaxSide {
		return nil, fmt.Errorf("swatch size %dx%d outside 2x1 to %dx%d", outW, outH, MaxSide, MaxSide)
	}

	clipped, err := colorspace.ToRGB(original)
	if err != nil {
		return nil, fmt.Errorf("failed to convert swatch color: %w", err)
	}

	left := width / 2
	img := imaging.New(width, height, toNRGBA(display))
	img = imaging.Paste(img, imaging.New(left, height, toNRGBA(clipped)), image.Pt(0, 0))

	if outW != width || outH != height {
		img = imaging.Resize(img, outW, outH, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}

	return &Result{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// toNRGBA clips c into sRGB and keeps its alpha.
func toNRGBA(c colorspace.RGB) color.NRGBA {
	clamp := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.Alpha)}
}
