// Package server implements the MCP (Model Context Protocol) surface of
// the image editor.
//
// The server speaks newline-delimited JSON-RPC 2.0 over stdin/stdout and
// exposes the editing core as tools:
//
//   - image_load, image_info: establish and describe the session source
//   - edit_rotate, edit_flip, edit_resize, edit_grayscale,
//     edit_brightness, edit_convert: append operations to the edit log
//   - edit_undo, edit_redo, edit_history, edit_reset: history control
//   - image_render: replay the log against the pristine source and
//     return encoded bytes plus dimensions, filename, and MIME type
//   - thumbnail_get, thumbnail_clear: memoized grid previews
//
// One server holds one editing session and one thumbnail cache. Requests
// are processed sequentially off the protocol loop, so session state
// needs no locking. Image bytes cross the protocol boundary as base64;
// nothing here touches the file system or network.
//
// # Error Handling
//
// Tool failures surface as JSON-RPC errors (code -32000) carrying the
// underlying error text. A failed call leaves the session untouched:
// the prior source, history, and preview all remain valid.
package server
