package codec

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WEBP format decoder
)

// DefaultQuality is the JPEG quality used when the caller passes 0.
const DefaultQuality = 90

// Decode decodes a byte sequence of unknown raster format into a pixel
// buffer. JPEG, PNG, BMP, GIF, and WEBP input are recognized; for animated
// GIF input only the first frame is decoded.
//
// Empty, truncated, or unrecognized input returns a *DecodeError.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Reason: "empty input"}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: "unrecognized or corrupt image data", Err: err}
	}
	return img, nil
}

// DecodeFormat is like Decode but also reports the detected input format.
func DecodeFormat(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, 0, &DecodeError{Reason: "empty input"}
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, &DecodeError{Reason: "unrecognized or corrupt image data", Err: err}
	}
	format, err := ParseFormat(name)
	if err != nil {
		return nil, 0, &DecodeError{Reason: "decoder reported unsupported format", Err: err}
	}
	return img, format, nil
}

// Encode encodes a pixel buffer to the requested format and returns the
// bytes together with the format actually written.
//
// Quality applies to lossy formats (JPEG, and WEBP when available) and is
// clamped to [1, 100]; passing 0 selects DefaultQuality. Lossless formats
// ignore it.
//
// WEBP encoding is only compiled in under the "webp" build tag with cgo.
// When it is absent, a WEBP request is written as PNG instead and the
// returned format is FormatPNG. Callers must label the bytes with the
// returned format, never the requested one.
func Encode(img image.Image, format Format, quality int) ([]byte, Format, error) {
	if !format.Valid() {
		return nil, format, &EncodeError{Format: format, Reason: "unknown target format"}
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, format, &EncodeError{Format: format, Reason: "zero-dimension pixel buffer"}
	}

	quality = clampQuality(quality)

	if format == FormatWEBP {
		if webpEncoderAvailable {
			data, err := encodeWEBP(img, quality)
			if err != nil {
				return nil, format, &EncodeError{Format: format, Reason: "encoder failed", Err: err}
			}
			return data, FormatWEBP, nil
		}
		format = FormatPNG
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case FormatBMP:
		err = imaging.Encode(&buf, img, imaging.BMP)
	case FormatGIF:
		err = imaging.Encode(&buf, img, imaging.GIF)
	}
	if err != nil {
		return nil, format, &EncodeError{Format: format, Reason: "encoder failed", Err: err}
	}
	return buf.Bytes(), format, nil
}

// WEBPEncoderAvailable reports whether this build can write WEBP output.
// When false, Encode substitutes PNG for WEBP requests.
func WEBPEncoderAvailable() bool {
	return webpEncoderAvailable
}

func clampQuality(q int) int {
	switch {
	case q == 0:
		return DefaultQuality
	case q < 1:
		return 1
	case q > 100:
		return 100
	default:
		return q
	}
}
