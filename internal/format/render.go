package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// hexString renders "#RRGGBB", or "#RRGGBBAA" when withAlpha is set.
func hexString(c colorspace.Color, withAlpha bool) (string, error) {
	rgb, err := colorspace.ToRGB(c)
	if err != nil {
		return "", err
	}
	r, g, b := bytes255(rgb)
	if withAlpha {
		return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, alphaByte(rgb.Alpha)), nil
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b), nil
}

// HexPreview renders the swatch hex of an sRGB color. It is hexString
// without the error path, since no conversion is needed.
func HexPreview(c colorspace.RGB) string {
	r, g, b := bytes255(c)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// rgbString renders "rgb(R, G, B)" with integer channels, adding " / A" when
// the color is translucent.
func rgbString(c colorspace.Color) (string, error) {
	rgb, err := colorspace.ToRGB(c)
	if err != nil {
		return "", err
	}
	r, g, b := bytes255(rgb)
	return fmt.Sprintf("rgb(%d, %d, %d%s)", r, g, b, alphaSuffix(rgb.Alpha)), nil
}

// hslString renders "hsl(H, S%, L%)" from the clamped sRGB channels. H is a
// whole degree in [0, 360); S and L carry one decimal.
func hslString(c colorspace.Color) (string, error) {
	rgb, err := colorspace.ToRGB(c)
	if err != nil {
		return "", err
	}
	h, s, l := hsl(clamped(rgb))

	hue := math.Round(h)
	if hue >= 360 {
		hue = 0
	}
	return fmt.Sprintf("hsl(%d, %s%%, %s%%%s)",
		int(hue), fixed(s*100, 1), fixed(l*100, 1), alphaSuffix(rgb.Alpha)), nil
}

// hsl is colorful's Hsl with an achromatic cutoff. Channels that differ
// by less than achromaticSpread are gray: hue and saturation are 0.
func hsl(c colorful.Color) (h, s, l float64) {
	lo := math.Min(c.R, math.Min(c.G, c.B))
	hi := math.Max(c.R, math.Max(c.G, c.B))
	if hi-lo < achromaticSpread {
		return 0, 0, (hi + lo) / 2
	}
	return c.Hsl()
}

// p3String renders "color(display-p3 R G B)", each channel to four decimals
// and right-padded with zeros to at least six characters.
func p3String(c colorspace.Color) (string, error) {
	p3, err := colorspace.ToP3(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("color(display-p3 %s %s %s%s)",
		padEnd(fixed(p3.R, 4), 6),
		padEnd(fixed(p3.G, 4), 6),
		padEnd(fixed(p3.B, 4), 6),
		alphaSuffix(p3.Alpha)), nil
}

// oklchString renders "oklch(L% C H)". L always keeps exactly two decimals;
// C is padded to six characters.
func oklchString(c colorspace.Color) (string, error) {
	lch, err := colorspace.ToOKLCH(c)
	if err != nil {
		return "", err
	}
	hue := fixed(lch.H, 2)
	if hue == "360.00" {
		hue = "0.00"
	}
	return fmt.Sprintf("oklch(%s%% %s %s%s)",
		fixed(lch.L*100, 2),
		padEnd(fixed(lch.C, 4), 6),
		hue,
		alphaSuffix(lch.Alpha)), nil
}

// oklabString renders "oklab(L% a b)" with two decimals on L and a and one
// on b.
func oklabString(c colorspace.Color) (string, error) {
	lab, err := colorspace.ToOKLab(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("oklab(%s%% %s %s%s)",
		fixed(lab.L*100, 2), fixed(lab.A, 2), fixed(lab.B, 1), alphaSuffix(lab.Alpha)), nil
}

// vecString renders "vec4(r, g, b, a)" with linear-light channels. The
// sRGB channels are linearized with the sign-aware curve and never clamped,
// so out-of-gamut excursions stay visible.
func vecString(c colorspace.Color) (string, error) {
	rgb, err := colorspace.ToRGB(c)
	if err != nil {
		return "", err
	}
	lin := colorspace.LinearRGB{
		R:     colorspace.LinearizeSigned(rgb.R),
		G:     colorspace.LinearizeSigned(rgb.G),
		B:     colorspace.LinearizeSigned(rgb.B),
		Alpha: rgb.Alpha,
	}
	// Huge encoded channels overflow the 2.4 power.
	if !colorspace.Finite(lin) {
		return "", fmt.Errorf("vec: %w", colorspace.ErrNonFinite)
	}
	parts := []string{
		padEnd(fixed(lin.R, 5), 7),
		padEnd(fixed(lin.G, 5), 7),
		padEnd(fixed(lin.B, 5), 7),
		padEnd(fixed(lin.Alpha, 5), 7),
	}
	return "vec4(" + strings.Join(parts, ", ") + ")", nil
}

// figmaP3String renders "#RRGGBBAA" from Display P3 channels. Channels are
// limited to the P3 headroom and then saturated at 1 before encoding.
func figmaP3String(c colorspace.Color) (string, error) {
	p3, err := colorspace.ToP3(c)
	if err != nil {
		return "", err
	}
	var out [3]uint8
	for i, v := range p3.Channels() {
		v = snap(clamp(clamp(v, 0, 1.6), 0, 1))
		out[i] = uint8(math.Round(v * 255))
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", out[0], out[1], out[2], alphaByte(p3.Alpha)), nil
}

// snapDigits is the decimal precision channels are rounded to before they
// are quantized, so that matrix round-off cannot split a rounding tie.
const snapDigits = 1e9

// achromaticSpread is the channel spread below which hsl reports gray.
const achromaticSpread = 1e-9

func snap(v float64) float64 {
	return math.Round(v*snapDigits) / snapDigits
}

// bytes255 clamps each channel into [0, 1] and scales it to 0-255.
func bytes255(c colorspace.RGB) (uint8, uint8, uint8) {
	return clamped(c).RGB255()
}

// clamped limits c to [0, 1] and snaps each channel.
func clamped(c colorspace.RGB) colorful.Color {
	cc := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
	return colorful.Color{R: snap(cc.R), G: snap(cc.G), B: snap(cc.B)}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 1) * 255))
}

// alphaSuffix is " / A" for translucent colors and empty otherwise.
func alphaSuffix(a float64) string {
	if a >= 1 {
		return ""
	}
	return " / " + fixed(clamp(a, 0, 1), 3)
}

// fixed formats v with exactly d decimals. A result that rounds to zero is
// printed without a minus sign.
func fixed(v float64, d int) string {
	s := strconv.FormatFloat(v, 'f', d, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

// padEnd right-pads s with zeros up to width characters.
func padEnd(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("0", width-len(s))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
