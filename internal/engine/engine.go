package engine

import (
	"fmt"
	"log"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/format"
	"github.com/ironsheep/color-tools-mcp/internal/gamut"
	"github.com/ironsheep/color-tools-mcp/internal/parse"
)

// Gamut tags attached to each result.
const (
	TagSRGB         = "srgb"
	TagP3           = "p3"
	TagSRGBFallback = "srgb fallback"
	TagP3Fallback   = "p3 fallback"
	TagOutOfP3      = "out of p3"
)

// invalidPreview is the swatch shown for a format that failed to render.
const invalidPreview = "#000000"

// FormatResult is one rendered format of a query.
type FormatResult struct {
	Format     format.Format `json:"format"`
	Value      string        `json:"value"`
	HexPreview string        `json:"hexPreview"`
	TagText    string        `json:"tagText"`
}

// Failure describes a single format that could not be rendered.
type Failure struct {
	Query  string
	Format format.Format
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("format %s of %q: %v", f.Format, f.Query, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Notifier receives per-format failures as they happen.
type Notifier func(Failure)

// LogNotifier writes failures to the standard logger.
func LogNotifier(f Failure) {
	log.Printf("Conversion failed: %v", f)
}

// Engine converts queries into format results. The zero value is not usable;
// create one with New.
type Engine struct {
	detector *gamut.Detector
	notify   Notifier
}

// New creates an Engine with its own classification cache. A nil notifier
// means failures are logged.
func New(notify Notifier) *Engine {
	if notify == nil {
		notify = LogNotifier
	}
	return &Engine{
		detector: gamut.NewDetector(gamut.NewCache()),
		notify:   notify,
	}
}

// Cache returns the classification cache owned by the engine.
func (e *Engine) Cache() *gamut.Cache {
	return e.detector.Cache()
}

// Convert renders query in every format of format.Order. The result is empty
// when the query is blank or cannot be parsed.
func (e *Engine) Convert(query string) []FormatResult {
	c, ok := parse.Parse(query)
	if !ok {
		return []FormatResult{}
	}
	return e.ConvertColor(query, c)
}

// ConvertColor renders an already parsed color in every format of
// format.Order. query is only used to label failures.
func (e *Engine) ConvertColor(query string, c colorspace.Color) []FormatResult {
	v := e.view(c)
	results := make([]FormatResult, 0, len(format.Order))
	for _, f := range format.Order {
		results = append(results, e.render(query, v, f))
	}
	return results
}

// FormatOne renders query in a single format. ok is false when the query
// cannot be parsed.
func (e *Engine) FormatOne(query string, f format.Format) (FormatResult, bool) {
	c, ok := parse.Parse(query)
	if !ok {
		return FormatResult{}, false
	}
	return e.render(query, e.view(c), f), true
}

// Classify parses query and reports its gamut classification.
func (e *Engine) Classify(query string) (gamut.Classification, bool) {
	c, ok := parse.Parse(query)
	if !ok {
		return gamut.Classification{}, false
	}
	return e.detector.Classify(c), true
}

// Mapped holds a color next to the sRGB value shown in its place.
type Mapped struct {
	Original       colorspace.Color
	Classification gamut.Classification
	Display        colorspace.RGB
}

// Map parses query and resolves the sRGB color displayed for it: the color
// itself when it fits sRGB, otherwise the chroma-reduced substitute.
func (e *Engine) Map(query string) (Mapped, error) {
	c, ok := parse.Parse(query)
	if !ok {
		return Mapped{}, fmt.Errorf("unrecognized color %q", query)
	}
	v := e.view(c)
	if v.displayErr != nil {
		return Mapped{}, fmt.Errorf("map %q: %w", query, v.displayErr)
	}
	return Mapped{Original: c, Classification: v.class, Display: v.display}, nil
}

// view is everything the renderers share for one color.
type view struct {
	color      colorspace.Color
	class      gamut.Classification
	display    colorspace.RGB
	displayErr error
}

func (e *Engine) view(c colorspace.Color) view {
	v := view{color: c, class: e.detector.Classify(c)}
	v.display, v.displayErr = displayColor(c, v.class)
	return v
}

// displayColor picks the sRGB value used by display formats and previews.
func displayColor(c colorspace.Color, cl gamut.Classification) (colorspace.RGB, error) {
	if cl.OriginalSpace == gamut.SRGB {
		return colorspace.ToRGB(c)
	}
	if cl.Proxy == nil {
		return colorspace.RGB{}, fmt.Errorf("no oklch proxy: %w", colorspace.ErrNonFinite)
	}
	rgb := gamut.MapToSRGB(*cl.Proxy)
	// The cached proxy may come from a query with a different alpha.
	rgb.Alpha = c.Opacity()
	return rgb, nil
}

func (e *Engine) render(query string, v view, f format.Format) FormatResult {
	if v.displayErr != nil {
		return e.fail(query, f, v.displayErr)
	}

	var src colorspace.Color = v.display
	if f.Wide() {
		src = v.color
	}
	value, err := format.Render(src, f)
	if err != nil {
		return e.fail(query, f, err)
	}

	return FormatResult{
		Format:     f,
		Value:      value,
		HexPreview: format.HexPreview(v.display),
		TagText:    tagText(v.class.OriginalSpace, f),
	}
}

func (e *Engine) fail(query string, f format.Format, err error) FormatResult {
	e.notify(Failure{Query: query, Format: f, Err: err})
	return FormatResult{
		Format:     f,
		Value:      "Invalid " + f.Label(),
		HexPreview: invalidPreview,
	}
}

func tagText(g gamut.Gamut, f format.Format) string {
	switch g {
	case gamut.SRGB:
		return TagSRGB
	case gamut.DisplayP3:
		if f.Wide() {
			return TagP3
		}
		return TagSRGBFallback
	default:
		switch {
		case !f.Wide():
			return TagSRGBFallback
		case f == format.FigmaP3:
			return TagP3Fallback
		default:
			return TagOutOfP3
		}
	}
}
