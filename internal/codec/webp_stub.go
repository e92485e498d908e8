//go:build !webp || !cgo

package codec

import (
	"errors"
	"image"
)

const webpEncoderAvailable = false

func encodeWEBP(image.Image, int) ([]byte, error) {
	return nil, errors.New("webp encoding requires the webp build tag and cgo")
}
