// Package server implements the MCP (Model Context Protocol) server for
// in-image Chinese script conversion.
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
//   - image_load: Load image and get metadata
//   - image_translate: Redraw Simplified Chinese text as Traditional Chinese
//   - image_detect_text: List detected text regions and filter verdicts
//   - image_text_color: Dominant text color of a region
//   - image_fit_font_size: Largest font size that fits a box
//
// # Caching
//
// Decoded images are cached by path. Translations are cached by file
// content hash and font color, so repeating a request for the same image
// skips detection and drawing. Both caches live as long as the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details. Images that cannot be decoded are
//     reported as "unsupported or malformed image, please upload a valid
//     JPG or PNG".
package server
