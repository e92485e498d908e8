package codec

import (
	"fmt"
	"strings"
)

// Format identifies one of the raster formats the codec can read and write.
//
// The set is closed: every Format maps to exactly one canonical file
// extension and one canonical MIME type, and both mappings are exhaustive.
// Multiple extensions may alias to the same Format (".jpg" and ".jpeg"
// both parse to FormatJPEG), but the canonical pair is unique.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatBMP
	FormatGIF
	FormatWEBP
)

// Formats lists every supported format in declaration order.
func Formats() []Format {
	return []Format{FormatJPEG, FormatPNG, FormatBMP, FormatGIF, FormatWEBP}
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	return f >= FormatJPEG && f <= FormatWEBP
}

// String returns the lowercase format name, e.g. "jpeg" or "png".
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatGIF:
		return "gif"
	case FormatWEBP:
		return "webp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the canonical file extension including the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatBMP:
		return ".bmp"
	case FormatGIF:
		return ".gif"
	case FormatWEBP:
		return ".webp"
	default:
		return ""
	}
}

// MIMEType returns the canonical MIME type for the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatGIF:
		return "image/gif"
	case FormatWEBP:
		return "image/webp"
	default:
		return ""
	}
}

// ParseFormat converts a format name to a Format. Matching is
// case-insensitive and accepts "jpg" as an alias for "jpeg".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "gif":
		return FormatGIF, nil
	case "webp":
		return FormatWEBP, nil
	default:
		return 0, fmt.Errorf("unknown image format: %q", name)
	}
}

// FormatFromExtension converts a file extension (with or without the
// leading dot) to a Format. ".jpg" and ".jpeg" both map to FormatJPEG.
func FormatFromExtension(ext string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), "."))
}
