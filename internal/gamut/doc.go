// Package gamut decides which display gamut a color fits in and finds an
// sRGB substitute for colors that do not fit.
//
// # Classification
//
// A Detector routes every color through XYZ65 to OKLCH, then tests the
// result against sRGB and, failing that, Display P3. Membership uses a small
// tolerance (Epsilon) on each channel:
//   - sRGB: every channel in [-Epsilon, 1+Epsilon]
//   - Display P3: every channel in [-Epsilon, P3Headroom+Epsilon]
//
// Colors that pass neither test are classified as Out. Display P3 colors
// always need a fallback because the presentation surface only renders sRGB.
//
// # Caching
//
// Classifications are memoized in a Cache keyed by the color's space and
// channels. The cache is an explicit object owned by whoever constructs the
// Detector; nothing here is global. Cache is safe for concurrent use and
// stored classifications are never mutated.
//
// # Mapping
//
// MapToSRGB reduces OKLCH chroma at constant lightness and hue until the
// color converts into sRGB. The search halves its step each iteration and
// returns the first in-gamut candidate it meets. That is not a bisection of
// the gamut boundary: it may settle below the largest representable chroma,
// and it never revisits chroma values it has stepped past.
package gamut
