// Package server implements the MCP (Model Context Protocol) server for color
// conversion tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the conversion
// engine through the MCP protocol, so MCP clients can convert, classify and
// preview colors with exact, byte-stable output.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Conversion:
//   - color_convert: Render a query in every output format
//   - color_format: Render a query in one format
//
// Gamut:
//   - color_classify: sRGB / Display P3 / out-of-gamut classification
//   - color_gamut_map: Chroma-reduced sRGB substitute
//   - color_swatch: PNG preview of a color and its substitute
//
// Image sampling:
//   - color_sample: Convert the color of one pixel
//   - color_palette: Convert the dominant colors of an image
//
// Diagnostics:
//   - color_cache_stats: Classification and image cache statistics, with optional reset
//
// # Caching
//
// Gamut classifications are cached by the engine for the lifetime of the
// server, keyed by color space and channel values. Images read by the
// sampling tools are cached by path.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// An unrecognized query passed to color_convert is not an error: the result
// list is simply empty. A single format that fails to render is reported in
// place as "Invalid <FORMAT>" and announced with a notifications/message
// (level "error") written just before the tool response.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
