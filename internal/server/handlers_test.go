package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// createTestImageFile writes a solid-color PNG and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool issues a tools/call request and returns the raw response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult calls a tool that must succeed and decodes its JSON text into v.
func toolResult(t *testing.T, s *Server, name string, args interface{}, v interface{}) {
	t.Helper()
	resp := callTool(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("%s: unexpected error: %+v", name, resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("%s: unexpected content %v", name, content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("%s: invalid result JSON: %v", name, err)
	}
}

type formatResult struct {
	Format     string `json:"format"`
	Value      string `json:"value"`
	HexPreview string `json:"hexPreview"`
	TagText    string `json:"tagText"`
}

func TestHandleToolsCall_ColorConvert(t *testing.T) {
	s := New()

	var got struct {
		Query   string         `json:"query"`
		Results []formatResult `json:"results"`
	}
	toolResult(t, s, "color_convert", map[string]interface{}{"query": "#FF0000"}, &got)

	if got.Query != "#FF0000" {
		t.Errorf("query: got %q", got.Query)
	}
	wantFormats := []string{"figmaP3", "oklch", "p3", "oklab", "vec", "hex", "rgb", "hsl"}
	var gotFormats []string
	for _, r := range got.Results {
		gotFormats = append(gotFormats, r.Format)
	}
	if diff := cmp.Diff(wantFormats, gotFormats); diff != "" {
		t.Errorf("format order mismatch (-want +got):\n%s", diff)
	}

	want := formatResult{"oklch", "oklch(62.80% 0.2577 29.23)", "#FF0000", "srgb"}
	if diff := cmp.Diff(want, got.Results[1]); diff != "" {
		t.Errorf("oklch result mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleToolsCall_ColorConvertEmpty(t *testing.T) {
	s := New()
	for _, q := range []string{"", "not-a-color"} {
		var got struct {
			Results []formatResult `json:"results"`
		}
		toolResult(t, s, "color_convert", map[string]interface{}{"query": q}, &got)
		if got.Results == nil || len(got.Results) != 0 {
			t.Errorf("query %q: got %v, want an empty list", q, got.Results)
		}
	}
	if n := len(s.drainNotifications()); n != 0 {
		t.Errorf("parse failures must not notify, got %d", n)
	}
}

func TestHandleToolsCall_ColorFormat(t *testing.T) {
	s := New()

	var got formatResult
	toolResult(t, s, "color_format", map[string]interface{}{"query": "Figma P3 #FF8000FF", "format": "figmaP3"}, &got)
	if got.Value != "#FF8000FF" || got.TagText != "p3" {
		t.Errorf("got %+v, want #FF8000FF tagged p3", got)
	}

	toolResult(t, s, "color_format", map[string]interface{}{"query": "red", "format": "HEX/RGBA"}, &got)
	if got.Value != "#FF0000FF" {
		t.Errorf("hex/rgba: got %q", got.Value)
	}

	for _, args := range []map[string]interface{}{
		{"query": "red", "format": "cmyk"},
		{"query": "nope", "format": "hex"},
	} {
		resp := callTool(t, s, "color_format", args)
		if resp.Error == nil || resp.Error.Code != -32000 {
			t.Errorf("args %v: expected a -32000 error, got %+v", args, resp.Error)
		}
	}
}

func TestHandleToolsCall_ColorClassify(t *testing.T) {
	s := New()

	var got struct {
		Classification struct {
			OriginalSpace string `json:"original_space"`
			FallbackSpace string `json:"fallback_space"`
			InGamut       bool   `json:"in_gamut"`
			NeedsFallback bool   `json:"needs_fallback"`
		} `json:"classification"`
	}
	toolResult(t, s, "color_classify", map[string]interface{}{"query": "color(display-p3 1 0 0)"}, &got)

	cl := got.Classification
	if cl.OriginalSpace != "p3" || cl.FallbackSpace != "srgb" || !cl.InGamut || !cl.NeedsFallback {
		t.Errorf("got %+v, want p3 with srgb fallback", cl)
	}

	if resp := callTool(t, s, "color_classify", map[string]interface{}{"query": ""}); resp.Error == nil {
		t.Error("empty query should fail")
	}
}

func TestHandleToolsCall_ColorGamutMap(t *testing.T) {
	s := New()

	var got struct {
		Gamut    string `json:"gamut"`
		Original string `json:"original"`
		Mapped   string `json:"mapped"`
		Hex      string `json:"hex"`
		Changed  bool   `json:"changed"`
	}
	toolResult(t, s, "color_gamut_map", map[string]interface{}{"query": "oklch(50% 0.2 180)"}, &got)

	if got.Gamut != "out" || !got.Changed {
		t.Errorf("gamut: got %s changed=%v, want out changed=true", got.Gamut, got.Changed)
	}
	if got.Original != "oklch(50.00% 0.2000 180.00)" {
		t.Errorf("original: got %q", got.Original)
	}
	if got.Mapped != "oklch(50.00% 0.0500 180.00)" {
		t.Errorf("mapped: got %q", got.Mapped)
	}
	if got.Hex != "#426D64" {
		t.Errorf("hex: got %s, want #426D64", got.Hex)
	}
}

func TestHandleToolsCall_ColorSwatch(t *testing.T) {
	s := New()

	var got struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	toolResult(t, s, "color_swatch", map[string]interface{}{"query": "oklch(50% 0.2 180)", "width": 40, "height": 10}, &got)

	if got.Width != 40 || got.Height != 10 || got.MimeType != "image/png" {
		t.Errorf("got %dx%d %s, want 40x10 image/png", got.Width, got.Height, got.MimeType)
	}
	data, err := base64.StdEncoding.DecodeString(got.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("swatch is not a PNG: %v", err)
	}

	if resp := callTool(t, s, "color_swatch", map[string]interface{}{"query": "nope"}); resp.Error == nil {
		t.Error("unparseable query should fail")
	}
}

func TestHandleToolsCall_ColorSample(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 20, 10, color.RGBA{255, 128, 64, 255})

	var got struct {
		Hex     string         `json:"hex"`
		Results []formatResult `json:"results"`
	}
	toolResult(t, s, "color_sample", map[string]interface{}{"path": path, "x": 5, "y": 5}, &got)

	if got.Hex != "#FF8040" {
		t.Errorf("hex: got %s, want #FF8040", got.Hex)
	}
	if len(got.Results) != 8 || got.Results[6].Value != "rgb(255, 128, 64)" {
		t.Errorf("unexpected results: %+v", got.Results)
	}

	if resp := callTool(t, s, "color_sample", map[string]interface{}{"path": path, "x": 50, "y": 5}); resp.Error == nil {
		t.Error("out-of-bounds sample should fail")
	}
	if resp := callTool(t, s, "color_sample", map[string]interface{}{"path": "/nonexistent.png"}); resp.Error == nil {
		t.Error("missing file should fail")
	}
}

func TestHandleToolsCall_ColorPalette(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 10, 10, color.RGBA{0, 0, 255, 255})

	var got struct {
		Colors []struct {
			Hex        string         `json:"hex"`
			Percentage float64        `json:"percentage"`
			Results    []formatResult `json:"results"`
		} `json:"colors"`
	}
	toolResult(t, s, "color_palette", map[string]interface{}{"path": path}, &got)

	if len(got.Colors) != 1 {
		t.Fatalf("got %d colors, want 1", len(got.Colors))
	}
	c := got.Colors[0]
	if c.Hex != "#0000FF" || c.Percentage != 100 || len(c.Results) != 8 {
		t.Errorf("unexpected palette entry: %+v", c)
	}

	resp := callTool(t, s, "color_palette", map[string]interface{}{
		"path":   path,
		"region": map[string]interface{}{"x1": 0, "y1": 0, "x2": 50, "y2": 50},
	})
	if resp.Error == nil {
		t.Error("region outside the image should fail")
	}
}

func TestHandleToolsCall_CacheStats(t *testing.T) {
	s := New()
	callTool(t, s, "color_convert", map[string]interface{}{"query": "red"})
	callTool(t, s, "color_convert", map[string]interface{}{"query": "red"})

	var got struct {
		Entries int    `json:"entries"`
		Hits    uint64 `json:"hits"`
		Misses  uint64 `json:"misses"`
	}
	toolResult(t, s, "color_cache_stats", map[string]interface{}{}, &got)

	if got.Entries != 1 || got.Hits != 1 || got.Misses != 1 {
		t.Errorf("got %+v, want 1 entry, 1 hit, 1 miss", got)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	s := New()

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("unknown tool: got %+v, want -32000", resp.Error)
	}

	resp = s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("bad params: got %+v, want -32602", resp.Error)
	}

	resp = callTool(t, s, "color_convert", "not an object")
	if resp.Error == nil {
		t.Error("malformed arguments should fail")
	}
}

func TestHandleToolsCall_CacheStatsReset(t *testing.T) {
	s := New()
	red := createTestImageFile(t, 4, 4, color.RGBA{255, 0, 0, 255})
	callTool(t, s, "color_sample", map[string]interface{}{"path": red, "x": 0, "y": 0})
	callTool(t, s, "color_convert", map[string]interface{}{"query": "blue"})

	type stats struct {
		Entries int    `json:"entries"`
		Hits    uint64 `json:"hits"`
		Misses  uint64 `json:"misses"`
		Images  int    `json:"images"`
	}

	var got stats
	toolResult(t, s, "color_cache_stats", map[string]interface{}{"evict": red}, &got)
	if got.Images != 1 {
		t.Errorf("images before evict: got %d, want 1", got.Images)
	}
	toolResult(t, s, "color_cache_stats", map[string]interface{}{"clear": true}, &got)
	if got.Images != 0 || got.Entries != 2 {
		t.Errorf("after evict: got %+v, want 0 images and 2 entries", got)
	}

	toolResult(t, s, "color_cache_stats", nil, &got)
	if diff := cmp.Diff(stats{}, got); diff != "" {
		t.Errorf("after clear (-want +got):\n%s", diff)
	}
}
