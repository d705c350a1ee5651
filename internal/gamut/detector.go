package gamut

import (
	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

const (
	// Epsilon is the per-channel tolerance used by the membership tests.
	Epsilon = 1e-6

	// P3Headroom is the upper channel bound accepted for Display P3.
	P3Headroom = 1.6
)

// Gamut names a display gamut.
type Gamut string

const (
	SRGB      Gamut = "srgb"
	DisplayP3 Gamut = "p3"
	Out       Gamut = "out"
)

// Classification describes where a color sits relative to the supported
// gamuts. Values returned by a Detector are copies and may be modified
// freely by the caller.
type Classification struct {
	OriginalSpace Gamut `json:"original_space"`
	FallbackSpace Gamut `json:"fallback_space"`

	// P3Values is set when the color fits Display P3 (and therefore also
	// when it fits sRGB).
	P3Values *colorspace.P3 `json:"p3_values,omitempty"`

	// RGBValues is set when the color fits sRGB.
	RGBValues *colorspace.RGB `json:"rgb_values,omitempty"`

	// Proxy is the OKLCH form the tests were run on. It is nil when the
	// conversion chain failed.
	Proxy *colorspace.OKLCH `json:"proxy,omitempty"`

	InGamut       bool `json:"in_gamut"`
	NeedsFallback bool `json:"needs_fallback"`
}

func (c Classification) clone() Classification {
	if c.P3Values != nil {
		v := *c.P3Values
		c.P3Values = &v
	}
	if c.RGBValues != nil {
		v := *c.RGBValues
		c.RGBValues = &v
	}
	if c.Proxy != nil {
		v := *c.Proxy
		c.Proxy = &v
	}
	return c
}

// failed is the classification of a color whose conversion chain broke.
var failed = Classification{
	OriginalSpace: Out,
	FallbackSpace: SRGB,
	InGamut:       false,
	NeedsFallback: true,
}

// Detector classifies colors, memoizing results in its cache.
type Detector struct {
	cache *Cache
}

// NewDetector creates a Detector backed by cache. A nil cache gets a fresh
// private one.
func NewDetector(cache *Cache) *Detector {
	if cache == nil {
		cache = NewCache()
	}
	return &Detector{cache: cache}
}

// Cache returns the cache the detector memoizes into.
func (d *Detector) Cache() *Cache {
	return d.cache
}

// Classify reports which gamut c belongs to. It never fails: a color that
// cannot be converted is classified as Out with an sRGB fallback.
func (d *Detector) Classify(c colorspace.Color) Classification {
	// NaN channels would never match a stored key.
	if !colorspace.Finite(c) {
		return failed
	}

	key := KeyOf(c)
	if cl, ok := d.cache.Get(key); ok {
		return cl.clone()
	}

	cl := classify(c)
	d.cache.Put(key, cl)
	return cl.clone()
}

func classify(c colorspace.Color) Classification {
	xyz, err := colorspace.ToXYZ65(c)
	if err != nil {
		return failed
	}
	proxy, err := colorspace.ToOKLCH(xyz)
	if err != nil {
		return failed
	}
	rgb, err := colorspace.ToRGB(proxy)
	if err != nil {
		return failed
	}
	p3, err := colorspace.ToP3(proxy)
	if err != nil {
		return failed
	}

	switch {
	case InSRGB(rgb):
		return Classification{
			OriginalSpace: SRGB,
			FallbackSpace: SRGB,
			P3Values:      &p3,
			RGBValues:     &rgb,
			Proxy:         &proxy,
			InGamut:       true,
			NeedsFallback: false,
		}
	case InP3(p3):
		return Classification{
			OriginalSpace: DisplayP3,
			FallbackSpace: SRGB,
			P3Values:      &p3,
			Proxy:         &proxy,
			InGamut:       true,
			NeedsFallback: true,
		}
	default:
		return Classification{
			OriginalSpace: Out,
			FallbackSpace: DisplayP3,
			Proxy:         &proxy,
			InGamut:       false,
			NeedsFallback: true,
		}
	}
}

// InSRGB reports whether every channel of c lies in [-Epsilon, 1+Epsilon].
func InSRGB(c colorspace.RGB) bool {
	return inRange(c.Channels(), 1)
}

// InP3 reports whether every channel of c lies in
// [-Epsilon, P3Headroom+Epsilon].
func InP3(c colorspace.P3) bool {
	return inRange(c.Channels(), P3Headroom)
}

func inRange(ch [3]float64, hi float64) bool {
	for _, v := range ch {
		if v < -Epsilon || v > hi+Epsilon {
			return false
		}
	}
	return true
}
