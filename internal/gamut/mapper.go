package gamut

import (
	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// minStep ends the chroma search once the step shrinks below it.
const minStep = 1e-6

// MapToSRGB finds an sRGB stand-in for c at the same lightness and hue.
//
// Starting from the original chroma with a step of half that chroma, each
// iteration tests the candidate and returns it as soon as it fits sRGB;
// otherwise the step is subtracted from the chroma and halved. When the step
// drops below minStep the search gives up and returns black with c's alpha.
//
// A color already inside sRGB is returned unchanged on the first iteration.
func MapToSRGB(c colorspace.OKLCH) colorspace.RGB {
	chroma := c.C
	step := chroma / 2
	for {
		candidate := colorspace.OKLCH{L: c.L, C: chroma, H: c.H, Alpha: c.Alpha}
		if rgb, err := colorspace.ToRGB(candidate); err == nil && InSRGB(rgb) {
			return rgb
		}

		chroma -= step
		step /= 2
		if step < minStep {
			break
		}
	}
	return colorspace.RGB{Alpha: c.Alpha}
}
