// Package engine turns raw color queries into ordered format results.
//
// An Engine wires the parser, the gamut detector, the gamut mapper and the
// formatter together:
//
//	query → parse.Parse → gamut.Detector.Classify → gamut.MapToSRGB → format.Render
//
// # Results
//
// Convert returns one FormatResult per entry of format.Order. Each result
// carries the copyable value, a hex swatch preview and a short gamut tag:
//
//	srgb            the color fits sRGB
//	p3              the color fits Display P3 (wide formats only)
//	srgb fallback   display formats for anything outside sRGB
//	p3 fallback     figmaP3 for colors outside Display P3
//	out of p3       other wide formats for colors outside Display P3
//
// Display formats (hex, rgb, hsl) and the preview render the sRGB value when
// the color fits sRGB and the chroma-reduced substitute otherwise. Wide formats
// render the color itself.
//
// # Errors
//
// Unparseable input yields an empty result list and nothing else. A format
// whose conversion fails is reported as "Invalid <LABEL>" with a black preview
// and an empty tag, and the Engine's Notifier receives one Failure for it.
// The remaining formats are unaffected.
//
// # Thread Safety
//
// An Engine may be shared between goroutines. Its only mutable state is the
// classification cache, which is synchronized.
package engine
