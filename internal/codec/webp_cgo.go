//go:build webp && cgo

package codec

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

const webpEncoderAvailable = true

func encodeWEBP(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
