// Package server implements the MCP (Model Context Protocol) server for image list
// ordering and selection tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the ordering and
// selection core of an image viewer through the MCP protocol.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Image List Operations:
//   - image_list_sort: Natural, metadata or random ordering of image paths
//   - image_list_dirs: Distinct directories of a path list
//
// Selection Operations:
//   - image_selection: Selection rectangle and resize handles from drag corners
//   - image_crop_selection: Extract the selected region
//   - image_selection_overlay: Preview of the selection on the image
//
// # Defaults
//
// Arguments a caller omits (sort key and direction, directory grouping,
// handle size, overlay colour) come from the config.Config the server was
// created with.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for malformed or missing arguments and unknown tools,
//     -32000 for any other tool failure, -32601 for unknown methods and
//     -32700 for lines that are not JSON
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(cfg, logging.L())
//	if err := srv.Run(ctx); err != nil {
//	    logging.L().Fatal("server error", zap.Error(err))
//	}
package server
