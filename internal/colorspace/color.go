package colorspace

import (
	"fmt"
	"math"
)

// Space identifies the color space a Color value is expressed in.
type Space uint8

const (
	SpaceRGB Space = iota
	SpaceP3
	SpaceLinearRGB
	SpaceXYZ65
	SpaceOKLCH
	SpaceOKLab
)

// String returns the CSS-style identifier of the space.
func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "srgb"
	case SpaceP3:
		return "display-p3"
	case SpaceLinearRGB:
		return "srgb-linear"
	case SpaceXYZ65:
		return "xyz-d65"
	case SpaceOKLCH:
		return "oklch"
	case SpaceOKLab:
		return "oklab"
	default:
		return fmt.Sprintf("space(%d)", uint8(s))
	}
}

// Color is a color value in one of the supported spaces.
//
// The interface is sealed: only the types in this package implement it, so a
// type switch over RGB, P3, LinearRGB, XYZ65, OKLCH and OKLab is exhaustive.
type Color interface {
	// Space reports which space the channels are expressed in.
	Space() Space
	// Channels returns the three channel values in declaration order.
	Channels() [3]float64
	// Opacity returns the alpha channel, nominally in [0, 1].
	Opacity() float64

	sealed()
}

// RGB is a gamma-encoded sRGB color.
type RGB struct {
	R, G, B float64
	Alpha   float64
}

// P3 is a gamma-encoded Display P3 color. Channels above 1 carry headroom
// beyond the nominal P3 range.
type P3 struct {
	R, G, B float64
	Alpha   float64
}

// LinearRGB is a linear-light sRGB color.
type LinearRGB struct {
	R, G, B float64
	Alpha   float64
}

// XYZ65 is a CIE XYZ color relative to D65.
type XYZ65 struct {
	X, Y, Z float64
	Alpha   float64
}

// OKLCH is the polar form of OKLab. H is in degrees.
type OKLCH struct {
	L, C, H float64
	Alpha   float64
}

// OKLab is an OKLab color.
type OKLab struct {
	L, A, B float64
	Alpha   float64
}

// NewRGB returns an opaque sRGB color.
func NewRGB(r, g, b float64) RGB { return RGB{R: r, G: g, B: b, Alpha: 1} }

// NewP3 returns an opaque Display P3 color.
func NewP3(r, g, b float64) P3 { return P3{R: r, G: g, B: b, Alpha: 1} }

// NewLinearRGB returns an opaque linear sRGB color.
func NewLinearRGB(r, g, b float64) LinearRGB { return LinearRGB{R: r, G: g, B: b, Alpha: 1} }

// NewXYZ65 returns an opaque XYZ color.
func NewXYZ65(x, y, z float64) XYZ65 { return XYZ65{X: x, Y: y, Z: z, Alpha: 1} }

// NewOKLCH returns an opaque OKLCH color.
func NewOKLCH(l, c, h float64) OKLCH { return OKLCH{L: l, C: c, H: h, Alpha: 1} }

// NewOKLab returns an opaque OKLab color.
func NewOKLab(l, a, b float64) OKLab { return OKLab{L: l, A: a, B: b, Alpha: 1} }

func (c RGB) Space() Space         { return SpaceRGB }
func (c RGB) Channels() [3]float64 { return [3]float64{c.R, c.G, c.B} }
func (c RGB) Opacity() float64     { return c.Alpha }
func (RGB) sealed()                {}

func (c P3) Space() Space         { return SpaceP3 }
func (c P3) Channels() [3]float64 { return [3]float64{c.R, c.G, c.B} }
func (c P3) Opacity() float64     { return c.Alpha }
func (P3) sealed()                {}

func (c LinearRGB) Space() Space         { return SpaceLinearRGB }
func (c LinearRGB) Channels() [3]float64 { return [3]float64{c.R, c.G, c.B} }
func (c LinearRGB) Opacity() float64     { return c.Alpha }
func (LinearRGB) sealed()                {}

func (c XYZ65) Space() Space         { return SpaceXYZ65 }
func (c XYZ65) Channels() [3]float64 { return [3]float64{c.X, c.Y, c.Z} }
func (c XYZ65) Opacity() float64     { return c.Alpha }
func (XYZ65) sealed()                {}

func (c OKLCH) Space() Space         { return SpaceOKLCH }
func (c OKLCH) Channels() [3]float64 { return [3]float64{c.L, c.C, c.H} }
func (c OKLCH) Opacity() float64     { return c.Alpha }
func (OKLCH) sealed()                {}

func (c OKLab) Space() Space         { return SpaceOKLab }
func (c OKLab) Channels() [3]float64 { return [3]float64{c.L, c.A, c.B} }
func (c OKLab) Opacity() float64     { return c.Alpha }
func (OKLab) sealed()                {}

// New builds a Color of the given space from raw channels.
func New(space Space, ch [3]float64, alpha float64) (Color, error) {
	switch space {
	case SpaceRGB:
		return RGB{ch[0], ch[1], ch[2], alpha}, nil
	case SpaceP3:
		return P3{ch[0], ch[1], ch[2], alpha}, nil
	case SpaceLinearRGB:
		return LinearRGB{ch[0], ch[1], ch[2], alpha}, nil
	case SpaceXYZ65:
		return XYZ65{ch[0], ch[1], ch[2], alpha}, nil
	case SpaceOKLCH:
		return OKLCH{ch[0], ch[1], ch[2], alpha}, nil
	case SpaceOKLab:
		return OKLab{ch[0], ch[1], ch[2], alpha}, nil
	}
	return nil, fmt.Errorf("unknown color space %v", space)
}

// Finite reports whether every channel and the alpha of c are finite numbers.
func Finite(c Color) bool {
	if c == nil {
		return false
	}
	for _, v := range c.Channels() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	a := c.Opacity()
	return !math.IsNaN(a) && !math.IsInf(a, 0)
}
