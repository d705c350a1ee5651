package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/color-tools-mcp/internal/engine"
	"github.com/ironsheep/color-tools-mcp/internal/format"
	"github.com/ironsheep/color-tools-mcp/internal/gamut"
	"github.com/ironsheep/color-tools-mcp/internal/sample"
	"github.com/ironsheep/color-tools-mcp/internal/swatch"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_convert", "color_swatch").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler unmarshals its arguments, applies defaults for optional
// parameters and calls into the engine.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Conversion
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_format":
		return s.handleColorFormat(args)

	// Gamut
	case "color_classify":
		return s.handleColorClassify(args)
	case "color_gamut_map":
		return s.handleColorGamutMap(args)
	case "color_swatch":
		return s.handleColorSwatch(args)

	// Image sampling
	case "color_sample":
		return s.handleColorSample(args)
	case "color_palette":
		return s.handleColorPalette(args)

	// Diagnostics
	case "color_cache_stats":
		return s.handleCacheStats(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating missing arguments as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Conversion Handlers ===

type queryArgs struct {
	Query string `json:"query"`
}

type convertResult struct {
	Query   string                `json:"query"`
	Results []engine.FormatResult `json:"results"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a queryArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return &convertResult{Query: a.Query, Results: s.engine.Convert(a.Query)}, nil
}

type colorFormatArgs struct {
	Query  string `json:"query"`
	Format string `json:"format"`
}

func (s *Server) handleColorFormat(args json.RawMessage) (interface{}, error) {
	var a colorFormatArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	f, ok := format.Lookup(a.Format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", a.Format)
	}
	result, ok := s.engine.FormatOne(a.Query, f)
	if !ok {
		return nil, fmt.Errorf("unrecognized color: %q", a.Query)
	}
	return &result, nil
}

// === Gamut Handlers ===

type classifyResult struct {
	Query          string               `json:"query"`
	Classification gamut.Classification `json:"classification"`
}

func (s *Server) handleColorClassify(args json.RawMessage) (interface{}, error) {
	var a queryArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	cl, ok := s.engine.Classify(a.Query)
	if !ok {
		return nil, fmt.Errorf("unrecognized color: %q", a.Query)
	}
	return &classifyResult{Query: a.Query, Classification: cl}, nil
}

type gamutMapResult struct {
	Query    string      `json:"query"`
	Gamut    gamut.Gamut `json:"gamut"`
	Original string      `json:"original"`
	Mapped   string      `json:"mapped"`
	Hex      string      `json:"hex"`
	Changed  bool        `json:"changed"`
}

func (s *Server) handleColorGamutMap(args json.RawMessage) (interface{}, error) {
	var a queryArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	m, err := s.engine.Map(a.Query)
	if err != nil {
		return nil, err
	}

	original, err := format.Render(m.Original, format.OKLCH)
	if err != nil {
		return nil, err
	}
	mapped, err := format.Render(m.Display, format.OKLCH)
	if err != nil {
		return nil, err
	}

	return &gamutMapResult{
		Query:    a.Query,
		Gamut:    m.Classification.OriginalSpace,
		Original: original,
		Mapped:   mapped,
		Hex:      format.HexPreview(m.Display),
		Changed:  m.Classification.OriginalSpace != gamut.SRGB,
	}, nil
}

type colorSwatchArgs struct {
	Query  string  `json:"query"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleColorSwatch(args json.RawMessage) (interface{}, error) {
	var a colorSwatchArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	m, err := s.engine.Map(a.Query)
	if err != nil {
		return nil, err
	}
	return swatch.Render(m.Original, m.Display, a.Width, a.Height, a.Scale)
}

// === Image Sampling Handlers ===

type colorSampleArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type sampleResult struct {
	Path    string                `json:"path"`
	X       int                   `json:"x"`
	Y       int                   `json:"y"`
	Hex     string                `json:"hex"`
	Results []engine.FormatResult `json:"results"`
}

func (s *Server) handleColorSample(args json.RawMessage) (interface{}, error) {
	var a colorSampleArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.images.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := sample.Pixel(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}

	label := fmt.Sprintf("%s (%d,%d)", a.Path, a.X, a.Y)
	return &sampleResult{
		Path:    a.Path,
		X:       a.X,
		Y:       a.Y,
		Hex:     format.HexPreview(c),
		Results: s.engine.ConvertColor(label, c),
	}, nil
}

type colorPaletteArgs struct {
	Path   string         `json:"path"`
	Count  int            `json:"count"`
	Region *sample.Region `json:"region,omitempty"`
}

type paletteEntry struct {
	Hex        string                `json:"hex"`
	Percentage float64               `json:"percentage"`
	Results    []engine.FormatResult `json:"results"`
}

type paletteResult struct {
	Path   string         `json:"path"`
	Colors []paletteEntry `json:"colors"`
}

func (s *Server) handleColorPalette(args json.RawMessage) (interface{}, error) {
	var a colorPaletteArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.images.Load(a.Path)
	if err != nil {
		return nil, err
	}
	swatches, err := sample.Palette(img, a.Count, a.Region)
	if err != nil {
		return nil, err
	}

	entries := make([]paletteEntry, len(swatches))
	for i, sw := range swatches {
		hex := format.HexPreview(sw.Color)
		entries[i] = paletteEntry{
			Hex:        hex,
			Percentage: sw.Percentage,
			Results:    s.engine.ConvertColor(hex, sw.Color),
		}
	}
	return &paletteResult{Path: a.Path, Colors: entries}, nil
}

// === Diagnostics Handlers ===

type cacheStatsResult struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Images  int    `json:"images"`
}

type cacheStatsArgs struct {
	Clear bool   `json:"clear"`
	Evict string `json:"evict"`
}

// handleCacheStats reports cache sizes, then applies the optional reset.
// The counters returned are the ones seen before clearing.
func (s *Server) handleCacheStats(args json.RawMessage) (interface{}, error) {
	var a cacheStatsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	cache := s.engine.Cache()
	hits, misses := cache.Stats()
	result := &cacheStatsResult{
		Entries: cache.Len(),
		Hits:    hits,
		Misses:  misses,
		Images:  s.images.Len(),
	}

	if a.Evict != "" {
		s.images.Evict(a.Evict)
	}
	if a.Clear {
		cache.Clear()
		s.images.Clear()
	}
	return result, nil
}
