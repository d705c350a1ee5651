// Package colorspace defines the color values handled by the conversion engine
// and the pure numeric transforms between them.
//
// # Supported Spaces
//
// Six spaces are modelled, each as its own value type:
//   - RGB: gamma-encoded sRGB, channels nominally 0-1
//   - P3: gamma-encoded Display P3, channels nominally 0-1
//   - LinearRGB: linear-light sRGB
//   - XYZ65: CIE XYZ relative to the D65 white point
//   - OKLab: perceptual lightness plus a/b opponent axes
//   - OKLCH: polar OKLab (lightness, chroma, hue in degrees)
//
// All of them satisfy the sealed Color interface, so callers switch on the
// concrete type instead of comparing string tags.
//
// # Conversion Graph
//
// XYZ65 is the hub. Only a handful of edges are defined directly (encoded to
// linear, linear to XYZ, XYZ to OKLab, OKLab to OKLCH); every other pair is
// resolved by converting to XYZ65 first and then out to the target space.
// This keeps a single numeric path between any two spaces.
//
// # Errors
//
// Conversions fail with an error wrapping ErrNonFinite when the input or the
// result carries NaN or infinite channels. No conversion clamps: values
// outside a space's nominal range pass through untouched so that gamut
// membership can be decided afterwards.
//
// # Thread Safety
//
// Every value is immutable and every function is pure, so the package is safe
// for concurrent use.
package colorspace
