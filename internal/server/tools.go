package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// queryProperty is the schema shared by every tool that takes a color query.
var queryProperty = map[string]interface{}{
	"type":        "string",
	"description": "Color in any supported notation: #hex, rgb(), hsl(), oklch(), oklab(), color(display-p3 ...), a CSS color name, or \"Figma P3 #RRGGBBAA\"",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Conversion
		{
			Name:        "color_convert",
			Description: "Convert a color to every output format (figmaP3, oklch, p3, oklab, vec, hex, rgb, hsl). Each result carries the value, an sRGB hex preview and a gamut tag. Unrecognized input returns an empty list.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": queryProperty,
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "color_format",
			Description: "Render a color in a single format. Accepts the color_convert formats plus hex/rgba and lrgb.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": queryProperty,
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Output format",
						"enum":        []string{"figmaP3", "oklch", "p3", "oklab", "vec", "lrgb", "hex", "hex/rgba", "rgb", "hsl"},
					},
				},
				"required": []string{"query", "format"},
			},
		},

		// Gamut
		{
			Name:        "color_classify",
			Description: "Report whether a color fits sRGB, Display P3 or neither, with the in-gamut channel values and the fallback gamut.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": queryProperty,
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "color_gamut_map",
			Description: "Find the sRGB substitute for a color by reducing its OKLCH chroma at constant lightness and hue. Colors already in sRGB are returned unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": queryProperty,
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "color_swatch",
			Description: "Render a PNG swatch of a color as base64. The left half shows the color clipped to sRGB, the right half its gamut-mapped substitute.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": queryProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Swatch width in pixels (default: 128)",
						"default":     128,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Swatch height in pixels (default: 64)",
						"default":     64,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor applied after rendering (default: 1.0)",
						"default":     1.0,
					},
				},
				"required": []string{"query"},
			},
		},

		// Image sampling
		{
			Name:        "color_sample",
			Description: "Read the pixel at (x, y) of a PNG, JPEG or GIF file and convert it to every output format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "color_palette",
			Description: "Extract the most common colors of an image, or of a region of it, and convert each to every output format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (default: 5)",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region to sample, x2/y2 exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
				},
				"required": []string{"path"},
			},
		},

		// Diagnostics
		{
			Name:        "color_cache_stats",
			Description: "Report the size and hit rate of the gamut classification cache and the image cache. Optionally evict one image or clear both caches afterwards.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"clear": map[string]interface{}{
						"type":        "boolean",
						"description": "Clear both caches after reporting",
					},
					"evict": map[string]interface{}{
						"type":        "string",
						"description": "Path of one cached image to drop after reporting",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
