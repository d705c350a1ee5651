package parse

import (
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// okChromaPercent is the chroma (and a/b magnitude) that 100% maps to in
// oklch() and oklab().
const okChromaPercent = 0.4

// parseFunction handles the CSS functional notations. body is everything
// between the parentheses.
func parseFunction(name, body string) (colorspace.Color, bool) {
	if name == "color" {
		return parseColorFunction(body)
	}

	ch, alphaTok, ok := splitArgs(body)
	if !ok || len(ch) != 3 {
		return nil, false
	}
	alpha, ok := parseAlpha(alphaTok)
	if !ok {
		return nil, false
	}

	switch name {
	case "rgb", "rgba":
		var v [3]float64
		for i, tok := range ch {
			f, pct, ok := parseNumberOrPercent(tok)
			if !ok {
				return nil, false
			}
			if pct {
				v[i] = clamp(f/100, 0, 1)
			} else {
				v[i] = clamp(f/255, 0, 1)
			}
		}
		return colorspace.RGB{R: v[0], G: v[1], B: v[2], Alpha: alpha}, true

	case "hsl", "hsla":
		h, ok := parseAngle(ch[0])
		if !ok {
			return nil, false
		}
		// Bare numbers are read as percentages, as CSS Color 4 allows.
		s, _, ok := parseNumberOrPercent(ch[1])
		if !ok {
			return nil, false
		}
		l, _, ok := parseNumberOrPercent(ch[2])
		if !ok {
			return nil, false
		}
		c := colorful.Hsl(colorspace.NormalizeHue(h), clamp(s/100, 0, 1), clamp(l/100, 0, 1))
		return colorspace.RGB{R: c.R, G: c.G, B: c.B, Alpha: alpha}, true

	case "oklch":
		l, ok := parseLightness(ch[0])
		if !ok {
			return nil, false
		}
		c, pct, ok := parseNumberOrPercent(ch[1])
		if !ok {
			return nil, false
		}
		if pct {
			c = c / 100 * okChromaPercent
		}
		h, ok := parseAngle(ch[2])
		if !ok {
			return nil, false
		}
		return colorspace.OKLCH{L: l, C: math.Max(c, 0), H: colorspace.NormalizeHue(h), Alpha: alpha}, true

	case "oklab":
		l, ok := parseLightness(ch[0])
		if !ok {
			return nil, false
		}
		var ab [2]float64
		for i, tok := range ch[1:] {
			f, pct, ok := parseNumberOrPercent(tok)
			if !ok {
				return nil, false
			}
			if pct {
				f = f / 100 * okChromaPercent
			}
			ab[i] = f
		}
		return colorspace.OKLab{L: l, A: ab[0], B: ab[1], Alpha: alpha}, true
	}

	return nil, false
}

// colorFunctionSpaces maps color() space identifiers to our spaces.
var colorFunctionSpaces = map[string]colorspace.Space{
	"display-p3":  colorspace.SpaceP3,
	"srgb":        colorspace.SpaceRGB,
	"srgb-linear": colorspace.SpaceLinearRGB,
	"xyz-d65":     colorspace.SpaceXYZ65,
	"xyz":         colorspace.SpaceXYZ65,
}

// parseColorFunction reads "color(<space> c1 c2 c3 [/ alpha])". Channels are
// not clamped.
func parseColorFunction(body string) (colorspace.Color, bool) {
	fields, alphaTok, ok := splitArgs(body)
	if !ok || len(fields) != 4 {
		return nil, false
	}
	space, ok := colorFunctionSpaces[fields[0]]
	if !ok {
		return nil, false
	}
	alpha, ok := parseAlpha(alphaTok)
	if !ok {
		return nil, false
	}

	var ch [3]float64
	for i, tok := range fields[1:] {
		f, pct, ok := parseNumberOrPercent(tok)
		if !ok {
			return nil, false
		}
		if pct {
			f /= 100
		}
		ch[i] = f
	}

	c, err := colorspace.New(space, ch, alpha)
	if err != nil {
		return nil, false
	}
	return c, true
}

// splitArgs separates the channel tokens from the optional alpha token.
// It accepts the legacy comma form "a, b, c[, alpha]" and the modern space
// form "a b c [/ alpha]", but not a mix of the two.
func splitArgs(body string) ([]string, string, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, "", false
	}

	if strings.Contains(body, ",") {
		if strings.Contains(body, "/") {
			return nil, "", false
		}
		parts := strings.Split(body, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if parts[i] == "" || strings.ContainsAny(parts[i], " \t") {
				return nil, "", false
			}
		}
		switch len(parts) {
		case 3:
			return parts, "", true
		case 4:
			return parts[:3], parts[3], true
		}
		return nil, "", false
	}

	left, right, hasSlash := strings.Cut(body, "/")
	fields := strings.Fields(left)
	if !hasSlash {
		return fields, "", true
	}
	alpha := strings.Fields(right)
	if len(alpha) != 1 {
		return nil, "", false
	}
	return fields, alpha[0], true
}

// parseNumberOrPercent parses "12.5" or "12.5%". The keyword "none" reads as
// zero. Infinite and NaN values are rejected.
func parseNumberOrPercent(tok string) (float64, bool, bool) {
	if tok == "none" {
		return 0, false, true
	}
	pct := strings.HasSuffix(tok, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, false
	}
	return f, pct, true
}

// parseLightness reads an OK lightness given as 0-1 or as a percentage.
func parseLightness(tok string) (float64, bool) {
	f, pct, ok := parseNumberOrPercent(tok)
	if !ok {
		return 0, false
	}
	if pct {
		f /= 100
	}
	return clamp(f, 0, 1), true
}

// parseAlpha reads an alpha token, defaulting to opaque when absent.
func parseAlpha(tok string) (float64, bool) {
	if tok == "" {
		return 1, true
	}
	f, pct, ok := parseNumberOrPercent(tok)
	if !ok {
		return 0, false
	}
	if pct {
		f /= 100
	}
	return clamp(f, 0, 1), true
}

// parseAngle reads a hue in degrees. Units deg, grad, rad and turn are
// understood; a bare number is degrees.
func parseAngle(tok string) (float64, bool) {
	if tok == "none" {
		return 0, true
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(tok, "deg"):
		tok = strings.TrimSuffix(tok, "deg")
	case strings.HasSuffix(tok, "grad"):
		tok, scale = strings.TrimSuffix(tok, "grad"), 360.0/400.0
	case strings.HasSuffix(tok, "rad"):
		tok, scale = strings.TrimSuffix(tok, "rad"), 180/math.Pi
	case strings.HasSuffix(tok, "turn"):
		tok, scale = strings.TrimSuffix(tok, "turn"), 360
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f * scale, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
