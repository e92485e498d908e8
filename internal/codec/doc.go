// Package codec decodes raw image bytes into pixel buffers and encodes
// pixel buffers back into binary raster formats.
//
// Supported input formats are JPEG, PNG, BMP, GIF (first frame only), and
// WEBP. Output covers the same set, except that WEBP encoding is only
// available when the binary is built with the "webp" build tag and cgo;
// without it, WEBP requests fall back to PNG and the substitution is
// reported through Encode's returned format.
//
// # Error Handling
//
// Decode failures return *DecodeError and encode failures return
// *EncodeError. Both unwrap to the underlying library error when one
// exists. The package never substitutes a default image for bad input.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package codec
