// Package server implements the MCP (Model Context Protocol) server for
// hotspot-map.
//
// The server exposes the map renderer and its building blocks as MCP tools so
// an agent can render maps, inspect rasters and classify detections without
// shelling out to the command.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - hotspot_plot: render the map, optionally returning a preview
//   - raster_extent: size, bands and extent of a GeoTIFF
//   - hotspot_classify: per-point countries and per-country counts
//   - output_path: the file name hotspot_plot would write
//
// # Borders Caching
//
// Country border datasets are cached by path for the lifetime of the process
// (see BordersCache). Rasters and detection files are read fresh on every
// call since they usually change between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
// The server is started by `hotspot-map serve`, normally from an MCP client
// configuration:
//
//	srv := server.New(cfg, logger, version)
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server
