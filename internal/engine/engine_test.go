package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/format"
	"github.com/ironsheep/color-tools-mcp/internal/gamut"
)

// recorder collects failures delivered to a Notifier.
type recorder struct {
	mu       sync.Mutex
	failures []Failure
}

func (r *recorder) notify(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

func TestConvert_Red(t *testing.T) {
	rec := &recorder{}
	e := New(rec.notify)

	got := e.Convert("#FF0000")
	want := []FormatResult{
		{format.FigmaP3, "#EA3323FF", "#FF0000", TagSRGB},
		{format.OKLCH, "oklch(62.80% 0.2577 29.23)", "#FF0000", TagSRGB},
		{format.P3, "color(display-p3 0.9175 0.2003 0.1386)", "#FF0000", TagSRGB},
		{format.OKLab, "oklab(62.80% 0.22 0.1)", "#FF0000", TagSRGB},
		{format.Vec, "vec4(1.00000, 0.00000, 0.00000, 1.00000)", "#FF0000", TagSRGB},
		{format.Hex, "#FF0000", "#FF0000", TagSRGB},
		{format.RGB, "rgb(255, 0, 0)", "#FF0000", TagSRGB},
		{format.HSL, "hsl(0, 100.0%, 50.0%)", "#FF0000", TagSRGB},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Convert(#FF0000) mismatch (-want +got):\n%s", diff)
	}
	if len(rec.failures) != 0 {
		t.Errorf("unexpected failures: %v", rec.failures)
	}
}

func TestConvert_EmptyResults(t *testing.T) {
	rec := &recorder{}
	e := New(rec.notify)

	for _, q := range []string{"", "   ", "not-a-color", "rgb(1, 2)", "#12"} {
		got := e.Convert(q)
		if got == nil || len(got) != 0 {
			t.Errorf("Convert(%q): got %v, want an empty non-nil list", q, got)
		}
	}
	if len(rec.failures) != 0 {
		t.Errorf("parse failures must stay silent, got %v", rec.failures)
	}
}

func TestConvert_FigmaP3RoundTrip(t *testing.T) {
	e := New(nil)
	results := e.Convert("Figma P3 #FF8000FF")
	if len(results) != len(format.Order) {
		t.Fatalf("got %d results, want %d", len(results), len(format.Order))
	}

	byFormat := make(map[format.Format]FormatResult)
	for _, r := range results {
		byFormat[r.Format] = r
	}

	figma := byFormat[format.FigmaP3]
	if figma.Value != "#FF8000FF" {
		t.Errorf("figmaP3: got %q, want #FF8000FF", figma.Value)
	}
	if figma.TagText != TagP3 {
		t.Errorf("figmaP3 tag: got %q, want %q", figma.TagText, TagP3)
	}
	if got := byFormat[format.OKLCH].Value; got != "oklch(74.32% 0.2194 51.36)" {
		t.Errorf("oklch: got %q", got)
	}

	hex := byFormat[format.Hex]
	if hex.Value != "#E3976A" || hex.HexPreview != "#E3976A" {
		t.Errorf("hex: got value %q preview %q, want the mapped #E3976A", hex.Value, hex.HexPreview)
	}
	if hex.TagText != TagSRGBFallback {
		t.Errorf("hex tag: got %q, want %q", hex.TagText, TagSRGBFallback)
	}
}

func TestConvert_OutOfP3(t *testing.T) {
	e := New(nil)
	results := e.Convert("oklch(50% 0.2 180)")

	wantTags := map[format.Format]string{
		format.FigmaP3: TagP3Fallback,
		format.OKLCH:   TagOutOfP3,
		format.P3:      TagOutOfP3,
		format.OKLab:   TagOutOfP3,
		format.Vec:     TagOutOfP3,
		format.Hex:     TagSRGBFallback,
		format.RGB:     TagSRGBFallback,
		format.HSL:     TagSRGBFallback,
	}
	for _, r := range results {
		if r.TagText != wantTags[r.Format] {
			t.Errorf("%s tag: got %q, want %q", r.Format, r.TagText, wantTags[r.Format])
		}
		if r.HexPreview != "#426D64" {
			t.Errorf("%s preview: got %q, want #426D64", r.Format, r.HexPreview)
		}
		if r.Format == format.OKLCH && r.Value != "oklch(50.00% 0.2000 180.00)" {
			t.Errorf("oklch should render the original color, got %q", r.Value)
		}
		if r.Format == format.Hex && r.Value != "#426D64" {
			t.Errorf("hex should render the mapped color, got %q", r.Value)
		}
	}
}

func TestConvert_AlphaFollowsQuery(t *testing.T) {
	e := New(nil)
	e.Convert("oklch(50% 0.2 180)")

	// Same channels, so this hits the cached classification.
	res, ok := e.FormatOne("oklch(50% 0.2 180 / 0.5)", format.RGB)
	if !ok {
		t.Fatal("FormatOne failed to parse")
	}
	if res.Value != "rgb(66, 109, 100 / 0.500)" {
		t.Errorf("got %q, want the mapped color with alpha 0.500", res.Value)
	}
	if hits, _ := e.Cache().Stats(); hits == 0 {
		t.Error("second query should have hit the cache")
	}
}

func TestConvert_FailureIsolation(t *testing.T) {
	rec := &recorder{}
	e := New(rec.notify)

	// Parses, but the chroma overflows once cubed.
	results := e.Convert("oklch(0.5 1e300 0)")
	if len(results) != len(format.Order) {
		t.Fatalf("got %d results, want %d", len(results), len(format.Order))
	}
	for i, r := range results {
		want := FormatResult{
			Format:     format.Order[i],
			Value:      "Invalid " + format.Order[i].Label(),
			HexPreview: "#000000",
		}
		if diff := cmp.Diff(want, r); diff != "" {
			t.Errorf("result %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	if len(rec.failures) != len(format.Order) {
		t.Fatalf("got %d failures, want one per format", len(rec.failures))
	}
	for i, f := range rec.failures {
		if f.Format != format.Order[i] {
			t.Errorf("failure %d: format %s, want %s", i, f.Format, format.Order[i])
		}
		if !errors.Is(f, colorspace.ErrNonFinite) {
			t.Errorf("failure %d should wrap ErrNonFinite: %v", i, f.Err)
		}
	}
}

func TestConvert_VecOverflowFailsAlone(t *testing.T) {
	rec := &recorder{}
	e := New(rec.notify)

	// The encoded channels are finite; linearizing them again is not.
	results := e.Convert("color(xyz 1e200 0 0)")
	if len(results) != len(format.Order) {
		t.Fatalf("got %d results, want %d", len(results), len(format.Order))
	}
	for _, r := range results {
		invalid := strings.HasPrefix(r.Value, "Invalid ")
		if invalid != (r.Format == format.Vec) {
			t.Errorf("%s: got %q", r.Format, r.Value)
		}
	}
	if len(rec.failures) != 1 || rec.failures[0].Format != format.Vec {
		t.Fatalf("failures: got %v, want exactly one for vec", rec.failures)
	}
	if !errors.Is(rec.failures[0], colorspace.ErrNonFinite) {
		t.Errorf("vec failure should wrap ErrNonFinite: %v", rec.failures[0].Err)
	}
}

func TestRender_SingleFormatFailure(t *testing.T) {
	rec := &recorder{}
	e := New(rec.notify)

	c := colorspace.NewRGB(0.2, 0.4, 0.6)
	v := e.view(c)
	ok := e.render("steel", v, format.Hex)
	bad := e.render("steel", v, format.Format("cmyk"))

	if ok.Value != "#336699" || ok.TagText != TagSRGB {
		t.Errorf("hex: got %+v", ok)
	}
	if bad.Value != "Invalid CMYK" || bad.HexPreview != "#000000" || bad.TagText != "" {
		t.Errorf("unknown format: got %+v", bad)
	}
	if len(rec.failures) != 1 || rec.failures[0].Format != "cmyk" {
		t.Errorf("failures: got %v, want exactly one for cmyk", rec.failures)
	}
}

func TestFormatOne(t *testing.T) {
	e := New(nil)
	tests := []struct {
		query string
		f     format.Format
		want  string
	}{
		{"#ff000080", format.HexRGBA, "#FF000080"},
		{"white", format.LRGB, "vec4(1.00000, 1.00000, 1.00000, 1.00000)"},
		{"rgb(51 102 153)", format.OKLCH, "oklch(49.93% 0.0987 250.43)"},
		{"hsl(0 0% 50%)", format.HSL, "hsl(0, 0.0%, 50.0%)"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := e.FormatOne(tt.query, tt.f)
			if !ok {
				t.Fatalf("FormatOne(%q) failed to parse", tt.query)
			}
			if got.Value != tt.want {
				t.Errorf("got %q, want %q", got.Value, tt.want)
			}
		})
	}

	if _, ok := e.FormatOne("nope", format.Hex); ok {
		t.Error("FormatOne should report unparseable input")
	}
}

func TestClassify(t *testing.T) {
	e := New(nil)
	tests := []struct {
		query string
		want  gamut.Gamut
	}{
		{"#336699", gamut.SRGB},
		{"color(display-p3 1 0 0)", gamut.DisplayP3},
		{"oklch(50% 0.2 180)", gamut.Out},
	}
	for _, tt := range tests {
		got, ok := e.Classify(tt.query)
		if !ok {
			t.Fatalf("Classify(%q) failed to parse", tt.query)
		}
		if got.OriginalSpace != tt.want {
			t.Errorf("Classify(%q): got %s, want %s", tt.query, got.OriginalSpace, tt.want)
		}
	}
	if _, ok := e.Classify(""); ok {
		t.Error("Classify should report empty input")
	}
}

func TestMap(t *testing.T) {
	e := New(nil)

	m, err := e.Map("oklch(50% 0.2 180)")
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if got := format.HexPreview(m.Display); got != "#426D64" {
		t.Errorf("mapped hex: got %s, want #426D64", got)
	}
	if m.Classification.OriginalSpace != gamut.Out {
		t.Errorf("classification: got %s, want out", m.Classification.OriginalSpace)
	}

	m, err = e.Map("#336699")
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if got := format.HexPreview(m.Display); got != "#336699" {
		t.Errorf("in-gamut color should map to itself, got %s", got)
	}

	if _, err := e.Map("bogus"); err == nil {
		t.Error("Map should fail for unparseable input")
	}
	if _, err := e.Map("oklch(0.5 1e300 0)"); !errors.Is(err, colorspace.ErrNonFinite) {
		t.Errorf("Map overflow: got %v, want ErrNonFinite", err)
	}
}

func TestEngine_OwnCache(t *testing.T) {
	a, b := New(nil), New(nil)
	a.Convert("#FF0000")
	if a.Cache().Len() != 1 {
		t.Errorf("engine a cache Len: got %d, want 1", a.Cache().Len())
	}
	if b.Cache().Len() != 0 {
		t.Errorf("engines must not share a cache, b Len = %d", b.Cache().Len())
	}
}

func TestEngine_Concurrent(t *testing.T) {
	e := New(nil)
	queries := []string{"#FF0000", "oklch(50% 0.2 180)", "Figma P3 #FF8000FF", "steelblue"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if got := e.Convert(queries[(i+j)%len(queries)]); len(got) != len(format.Order) {
					t.Errorf("got %d results", len(got))
				}
			}
		}(i)
	}
	wg.Wait()

	if n := e.Cache().Len(); n != len(queries) {
		t.Errorf("cache Len: got %d, want %d", n, len(queries))
	}
}
