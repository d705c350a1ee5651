// Package parse turns a raw color query into a colorspace.Color.
//
// Accepted notations:
//   - Figma P3 hex: "Figma P3 #RRGGBBAA" or a bare "RRGGBBAA"
//   - CSS hex: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" (the "#" is optional for 3, 4 and 6 digits)
//   - rgb()/rgba(), hsl()/hsla(), oklch(), oklab()
//   - color(display-p3 | srgb | srgb-linear | xyz-d65 | xyz ...)
//   - CSS named colors and "transparent"
//
// Parsing never returns an error. A query that cannot be read as a color
// yields ok == false so callers can show an empty result while the user is
// still typing.
package parse

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// FigmaPrefix introduces a Figma Display P3 hex value.
const FigmaPrefix = "Figma P3 "

// Parse reads a trimmed query. It reports ok == false when the query is
// empty or not a recognised color.
func Parse(query string) (colorspace.Color, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}

	if strings.HasPrefix(query, FigmaPrefix) {
		return FigmaP3(strings.TrimPrefix(query, FigmaPrefix)), true
	}
	if len(query) == 8 && isHex(query) {
		return FigmaP3(query), true
	}

	return parseCSS(query)
}

// FigmaP3 decodes an RRGGBBAA hex string (optionally prefixed with "#") as
// Display P3. Anything that is not exactly eight hex digits decodes to opaque
// P3 black instead of failing.
func FigmaP3(token string) colorspace.P3 {
	token = strings.TrimPrefix(strings.TrimSpace(token), "#")
	v, ok := hexBytes(token, 8)
	if !ok {
		return colorspace.NewP3(0, 0, 0)
	}
	return colorspace.P3{
		R:     float64(v[0]) / 255,
		G:     float64(v[1]) / 255,
		B:     float64(v[2]) / 255,
		Alpha: float64(v[3]) / 255,
	}
}

func parseCSS(query string) (colorspace.Color, bool) {
	s := strings.ToLower(query)

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if (len(s) == 3 || len(s) == 4 || len(s) == 6) && isHex(s) {
		return parseHex(s)
	}

	if open := strings.IndexByte(s, '('); open > 0 && strings.HasSuffix(s, ")") {
		name := strings.TrimSpace(s[:open])
		return parseFunction(name, s[open+1:len(s)-1])
	}

	if s == "transparent" {
		return colorspace.RGB{}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return colorspace.RGB{
			R:     float64(c.R) / 255,
			G:     float64(c.G) / 255,
			B:     float64(c.B) / 255,
			Alpha: float64(c.A) / 255,
		}, true
	}

	return nil, false
}

// parseHex decodes the digits of a CSS hex color without the leading "#".
func parseHex(digits string) (colorspace.Color, bool) {
	switch len(digits) {
	case 3, 6:
		if !isHex(digits) {
			return nil, false
		}
		c, err := colorful.Hex("#" + digits)
		if err != nil {
			return nil, false
		}
		return colorspace.NewRGB(c.R, c.G, c.B), true

	case 4, 8:
		if len(digits) == 4 {
			digits = expandShortHex(digits)
		}
		v, ok := hexBytes(digits, 8)
		if !ok {
			return nil, false
		}
		return colorspace.RGB{
			R:     float64(v[0]) / 255,
			G:     float64(v[1]) / 255,
			B:     float64(v[2]) / 255,
			Alpha: float64(v[3]) / 255,
		}, true
	}
	return nil, false
}

// expandShortHex turns "rgba" into "rrggbbaa".
func expandShortHex(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
		b.WriteByte(s[i])
	}
	return b.String()
}

// hexBytes decodes exactly n hex digits into n/2 bytes.
func hexBytes(s string, n int) ([]uint8, bool) {
	if len(s) != n || !isHex(s) {
		return nil, false
	}
	out := make([]uint8, 0, n/2)
	for i := 0; i < n; i += 2 {
		v, err := strconv.ParseUint(s[i:i+2], 16, 8)
		if err != nil {
			return nil, false
		}
		out = append(out, uint8(v))
	}
	return out, true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
