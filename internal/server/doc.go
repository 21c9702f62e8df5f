// Package server implements the MCP (Model Context Protocol) server for image segmentation.
//
// This package provides a JSON-RPC 2.0 server that exposes the filters and the
// segmenter through the MCP protocol, so MCP-compatible clients can segment
// images and inspect the result.
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
// Filters:
//   - image_filter: 5x5 Gaussian blur or 3x3 Sobel gradient magnitude
//
// Segmentation:
//   - image_segment: Group similar neighbors and paint each region
//
// image_segment arguments override the defaults the server was created with
// (see NewWithConfig). Unset arguments fall back to those defaults.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// Every tool works on a copy, so filtering or segmenting never alters the
// cached image.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
