package colorspace

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrNonFinite is returned when a conversion meets NaN or infinite channels.
var ErrNonFinite = errors.New("non-finite channel value")

// achromaticChroma is the OKLCH chroma below which hue is reported as 0.
const achromaticChroma = 1e-6

type matrix3 [3][3]float64

func (m *matrix3) apply(a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// Display P3 primaries with a D65 white point, linear light.
var (
	linearP3ToXYZ = matrix3{
		{0.4865709486482162, 0.26566769316909306, 0.1982172852343625},
		{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
		{0.0000000000000000, 0.04511338185890264, 1.043944368900976},
	}
	xyzToLinearP3 = matrix3{
		{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
		{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
		{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
	}
)

// OKLab via LMS, expressed against D65 XYZ.
var (
	xyzToLMS = matrix3{
		{0.8190224379967030, 0.3619062600528904, -0.1288737815209879},
		{0.0329836539323885, 0.9292868615863434, 0.0361446663506424},
		{0.0481771893596242, 0.2642395317527308, 0.6335478284694309},
	}
	lmsToOKLab = matrix3{
		{0.2104542683093140, 0.7936177747023054, -0.0040720430116193},
		{1.9779985324311684, -2.4285922420485799, 0.4505937096174110},
		{0.0259040424655478, 0.7827717124575296, -0.8086757549230774},
	}
	oklabToLMS = matrix3{
		{1.0000000000000000, 0.3963377773761749, 0.2158037573099136},
		{1.0000000000000000, -0.1055613458156586, -0.0638541728258133},
		{1.0000000000000000, -0.0894841775298119, -1.2914855480194092},
	}
	lmsToXYZ = matrix3{
		{1.2268798758459243, -0.5578149944602171, 0.2813910456659647},
		{-0.0405757452148008, 1.1122868032803170, -0.0717110580655164},
		{-0.0763729366746601, -0.4214933324022432, 1.5869240198367816},
	}
)

func checkFinite(op string, c Color) error {
	if !Finite(c) {
		return fmt.Errorf("%s: %w", op, ErrNonFinite)
	}
	return nil
}

// ToXYZ65 converts any color to CIE XYZ (D65). It is the hub every other
// conversion passes through.
func ToXYZ65(c Color) (XYZ65, error) {
	if err := checkFinite("to xyz-d65", c); err != nil {
		return XYZ65{}, err
	}

	var out XYZ65
	switch v := c.(type) {
	case XYZ65:
		return v, nil
	case RGB:
		x, y, z := colorful.LinearRgbToXyz(Decode(v.R), Decode(v.G), Decode(v.B))
		out = XYZ65{x, y, z, v.Alpha}
	case LinearRGB:
		x, y, z := colorful.LinearRgbToXyz(v.R, v.G, v.B)
		out = XYZ65{x, y, z, v.Alpha}
	case P3:
		x, y, z := linearP3ToXYZ.apply(Decode(v.R), Decode(v.G), Decode(v.B))
		out = XYZ65{x, y, z, v.Alpha}
	case OKLab:
		out = oklabToXYZ(v)
	case OKLCH:
		out = oklabToXYZ(oklchToOKLab(v))
	default:
		return XYZ65{}, fmt.Errorf("to xyz-d65: unsupported color %T", c)
	}

	if err := checkFinite("to xyz-d65", out); err != nil {
		return XYZ65{}, err
	}
	return out, nil
}

// ToLinearRGB converts c to linear-light sRGB without clamping.
func ToLinearRGB(c Color) (LinearRGB, error) {
	if v, ok := c.(LinearRGB); ok {
		return v, checkFinite("to srgb-linear", v)
	}
	xyz, err := ToXYZ65(c)
	if err != nil {
		return LinearRGB{}, err
	}
	r, g, b := colorful.XyzToLinearRgb(xyz.X, xyz.Y, xyz.Z)
	out := LinearRGB{r, g, b, xyz.Alpha}
	return out, checkFinite("to srgb-linear", out)
}

// ToRGB converts c to gamma-encoded sRGB without clamping.
func ToRGB(c Color) (RGB, error) {
	if v, ok := c.(RGB); ok {
		return v, checkFinite("to srgb", v)
	}
	lin, err := ToLinearRGB(c)
	if err != nil {
		return RGB{}, err
	}
	out := RGB{Encode(lin.R), Encode(lin.G), Encode(lin.B), lin.Alpha}
	return out, checkFinite("to srgb", out)
}

// FromLinearRGB encodes a linear sRGB color. It is the inverse of
// ToLinearRGB for RGB inputs.
func FromLinearRGB(c LinearRGB) RGB {
	return RGB{Encode(c.R), Encode(c.G), Encode(c.B), c.Alpha}
}

// ToP3 converts c to gamma-encoded Display P3 without clamping.
func ToP3(c Color) (P3, error) {
	if v, ok := c.(P3); ok {
		return v, checkFinite("to display-p3", v)
	}
	xyz, err := ToXYZ65(c)
	if err != nil {
		return P3{}, err
	}
	r, g, b := xyzToLinearP3.apply(xyz.X, xyz.Y, xyz.Z)
	out := P3{Encode(r), Encode(g), Encode(b), xyz.Alpha}
	return out, checkFinite("to display-p3", out)
}

// ToOKLab converts c to OKLab.
func ToOKLab(c Color) (OKLab, error) {
	switch v := c.(type) {
	case OKLab:
		return v, checkFinite("to oklab", v)
	case OKLCH:
		if err := checkFinite("to oklab", v); err != nil {
			return OKLab{}, err
		}
		out := oklchToOKLab(v)
		return out, checkFinite("to oklab", out)
	}
	xyz, err := ToXYZ65(c)
	if err != nil {
		return OKLab{}, err
	}
	out := xyzToOKLab(xyz)
	return out, checkFinite("to oklab", out)
}

// ToOKLCH converts c to OKLCH. Hue is normalised into [0, 360) and forced to
// 0 for achromatic colors.
func ToOKLCH(c Color) (OKLCH, error) {
	if v, ok := c.(OKLCH); ok {
		return v, checkFinite("to oklch", v)
	}
	lab, err := ToOKLab(c)
	if err != nil {
		return OKLCH{}, err
	}
	out := oklabToOKLCH(lab)
	return out, checkFinite("to oklch", out)
}

// Convert converts c into the requested space.
func Convert(c Color, to Space) (Color, error) {
	switch to {
	case SpaceRGB:
		return ToRGB(c)
	case SpaceP3:
		return ToP3(c)
	case SpaceLinearRGB:
		return ToLinearRGB(c)
	case SpaceXYZ65:
		return ToXYZ65(c)
	case SpaceOKLCH:
		return ToOKLCH(c)
	case SpaceOKLab:
		return ToOKLab(c)
	}
	return nil, fmt.Errorf("convert: unknown color space %v", to)
}

func xyzToOKLab(c XYZ65) OKLab {
	l, m, s := xyzToLMS.apply(c.X, c.Y, c.Z)
	L, a, b := lmsToOKLab.apply(math.Cbrt(l), math.Cbrt(m), math.Cbrt(s))
	return OKLab{L, a, b, c.Alpha}
}

func oklabToXYZ(c OKLab) XYZ65 {
	l, m, s := oklabToLMS.apply(c.L, c.A, c.B)
	x, y, z := lmsToXYZ.apply(l*l*l, m*m*m, s*s*s)
	return XYZ65{x, y, z, c.Alpha}
}

func oklabToOKLCH(c OKLab) OKLCH {
	chroma := math.Hypot(c.A, c.B)
	hue := 0.0
	if chroma >= achromaticChroma {
		hue = NormalizeHue(math.Atan2(c.B, c.A) * 180 / math.Pi)
	}
	return OKLCH{c.L, chroma, hue, c.Alpha}
}

func oklchToOKLab(c OKLCH) OKLab {
	rad := c.H * math.Pi / 180
	return OKLab{c.L, c.C * math.Cos(rad), c.C * math.Sin(rad), c.Alpha}
}

// NormalizeHue wraps a hue angle in degrees into [0, 360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
