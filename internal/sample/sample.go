package sample

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// quantStep is the bucket width, in 8-bit units, used to group similar
// pixels when building a palette.
const quantStep = 16

// Region is a rectangle within an image.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Pixel returns the color at (x, y) as sRGB.
func Pixel(img image.Image, x, y int) (colorspace.RGB, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return colorspace.RGB{}, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	return toRGB(img.At(x, y)), nil
}

// Swatch is one palette entry.
type Swatch struct {
	Color colorspace.RGB
	// Percentage of the sampled pixels that fell into this bucket (0-100).
	Percentage float64
}

// Palette returns up to count of the most common colors in img, or in region
// when it is not nil. Pixels are grouped into buckets of 16 levels per
// channel and each bucket is represented by the average of its pixels.
// Entries are sorted by frequency, most common first.
func Palette(img image.Image, count int, region *Region) ([]Swatch, error) {
	if count <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", count)
	}

	bounds := img.Bounds()
	if region != nil {
		r := image.Rect(region.X1, region.Y1, region.X2, region.Y2)
		if r.Empty() || !r.In(bounds) {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				region.X1, region.Y1, region.X2, region.Y2,
				bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		bounds = r
	}

	type bucket struct {
		key     uint32
		n       int
		r, g, b float64
	}
	buckets := make(map[uint32]*bucket)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := toRGB(img.At(x, y))
			key := quantize(c.R)<<16 | quantize(c.G)<<8 | quantize(c.B)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{key: key}
				buckets[key] = bk
			}
			bk.n++
			bk.r += c.R
			bk.g += c.G
			bk.b += c.B
			total++
		}
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		sorted = append(sorted, bk)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].n != sorted[j].n {
			return sorted[i].n > sorted[j].n
		}
		return sorted[i].key < sorted[j].key
	})
	if len(sorted) > count {
		sorted = sorted[:count]
	}

	out := make([]Swatch, len(sorted))
	for i, bk := range sorted {
		n := float64(bk.n)
		out[i] = Swatch{
			Color:      colorspace.NewRGB(bk.r/n, bk.g/n, bk.b/n),
			Percentage: n / float64(total) * 100,
		}
	}
	return out, nil
}

func quantize(v float64) uint32 {
	return uint32(v*255+0.5) / quantStep
}

func toRGB(c color.Color) colorspace.RGB {
	// Straight-alpha pixels are read as is; anything else goes through the
	// premultiplied RGBA path.
	switch v := c.(type) {
	case color.NRGBA:
		return colorspace.RGB{
			R:     float64(v.R) / 0xff,
			G:     float64(v.G) / 0xff,
			B:     float64(v.B) / 0xff,
			Alpha: float64(v.A) / 0xff,
		}
	case color.NRGBA64:
		return rgb64(v)
	}
	return rgb64(color.NRGBA64Model.Convert(c).(color.NRGBA64))
}

func rgb64(n color.NRGBA64) colorspace.RGB {
	return colorspace.RGB{
		R:     float64(n.R) / 0xffff,
		G:     float64(n.G) / 0xffff,
		B:     float64(n.B) / 0xffff,
		Alpha: float64(n.A) / 0xffff,
	}
}
