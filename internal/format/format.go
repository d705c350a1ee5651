// Package format renders colors as exact, byte-stable strings.
//
// Every renderer is a pure function of its input color. Display formats
// (hex, hex/rgba, rgb, hsl) clamp channels into [0, 1] first; wide formats
// (p3, oklch, oklab, vec) print whatever the conversion produced.
package format

import (
	"fmt"
	"strings"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// Format identifies an output notation.
type Format string

const (
	FigmaP3 Format = "figmaP3"
	OKLCH   Format = "oklch"
	P3      Format = "p3"
	OKLab   Format = "oklab"
	Vec     Format = "vec"
	LRGB    Format = "lrgb"
	Hex     Format = "hex"
	HexRGBA Format = "hex/rgba"
	RGB     Format = "rgb"
	HSL     Format = "hsl"
)

// Order is the fixed sequence in which a full conversion reports formats.
var Order = []Format{FigmaP3, OKLCH, P3, OKLab, Vec, Hex, RGB, HSL}

var all = []Format{FigmaP3, OKLCH, P3, OKLab, Vec, LRGB, Hex, HexRGBA, RGB, HSL}

// Lookup finds a format by name, ignoring case.
func Lookup(name string) (Format, bool) {
	for _, f := range all {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

// Label is the human-readable name of the format.
func (f Format) Label() string {
	switch f {
	case FigmaP3:
		return "Figma P3"
	case OKLCH:
		return "OKLCH"
	case P3:
		return "P3"
	case OKLab:
		return "OKLab"
	case Vec:
		return "VEC"
	case LRGB:
		return "LRGB"
	case Hex:
		return "HEX"
	case HexRGBA:
		return "HEX/RGBA"
	case RGB:
		return "RGB"
	case HSL:
		return "HSL"
	}
	return strings.ToUpper(string(f))
}

// Wide reports whether the format can express colors outside sRGB.
func (f Format) Wide() bool {
	switch f {
	case FigmaP3, OKLCH, P3, OKLab, Vec, LRGB:
		return true
	}
	return false
}

// Render produces the string for c in format f.
func Render(c colorspace.Color, f Format) (string, error) {
	var (
		s   string
		err error
	)
	switch f {
	case Hex:
		s, err = hexString(c, false)
	case HexRGBA:
		s, err = hexString(c, true)
	case RGB:
		s, err = rgbString(c)
	case HSL:
		s, err = hslString(c)
	case P3:
		s, err = p3String(c)
	case OKLCH:
		s, err = oklchString(c)
	case OKLab:
		s, err = oklabString(c)
	case Vec, LRGB:
		s, err = vecString(c)
	case FigmaP3:
		s, err = figmaP3String(c)
	default:
		return "", fmt.Errorf("unknown format %q", string(f))
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", f, err)
	}
	return s, nil
}
