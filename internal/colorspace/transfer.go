package colorspace

import "math"

// Transfer function constants shared by sRGB and Display P3.
//
// The decode threshold is 0.03928 on the encoded side, as in the original
// sRGB draft, rather than the 0.04045 of IEC 61966-2-1. The encode threshold
// is derived from it so that Decode(Encode(v)) == v for every v.
const (
	decodeThreshold = 0.03928
	encodeThreshold = decodeThreshold / 12.92
	linearSlope     = 12.92
	gammaOffset     = 0.055
	gammaExponent   = 2.4

	// signedThreshold is the decode threshold used for diagnostic
	// linear output.
	signedThreshold = 0.04045
)

// Decode converts a gamma-encoded channel value to linear light.
func Decode(v float64) float64 {
	if v <= decodeThreshold {
		return v / linearSlope
	}
	return math.Pow((v+gammaOffset)/(1+gammaOffset), gammaExponent)
}

// Encode converts a linear-light channel value to its gamma-encoded form.
// The two decode branches overlap for encoded values in (0.03928, 0.0393],
// so Encode(Decode(v)) only returns v outside that band.
func Encode(v float64) float64 {
	if v <= encodeThreshold {
		return v * linearSlope
	}
	return (1+gammaOffset)*math.Pow(v, 1/gammaExponent) - gammaOffset
}

// LinearizeSigned decodes an encoded channel, mirroring the curve around zero
// so that negative excursions stay negative instead of collapsing:
//
//	sign(v) * ((|v| + 0.055) / 1.055)^2.4   for |v| > 0.04045
//	v / 12.92                               otherwise
//
// It never clamps.
func LinearizeSigned(v float64) float64 {
	abs := math.Abs(v)
	if abs <= signedThreshold {
		return v / linearSlope
	}
	return math.Copysign(math.Pow((abs+gammaOffset)/(1+gammaOffset), gammaExponent), v)
}
