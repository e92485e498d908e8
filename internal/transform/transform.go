// Package transform provides the pure pixel operations the edit pipeline
// replays: rotation, mirroring, resizing, center cropping, and tonal
// adjustments. Every function returns a new buffer; inputs are never
// mutated, so the same source image can be transformed concurrently.
package transform

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// RotateRight rotates the image 90 degrees clockwise. Width and height
// swap; the rotation is pixel-exact with no interpolation.
func RotateRight(img image.Image) image.Image {
	return imaging.Rotate270(img)
}

// RotateLeft rotates the image 90 degrees counter-clockwise.
func RotateLeft(img image.Image) image.Image {
	return imaging.Rotate90(img)
}

// FlipHorizontal mirrors the image along the vertical axis.
func FlipHorizontal(img image.Image) image.Image {
	return imaging.FlipH(img)
}

// FlipVertical mirrors the image along the horizontal axis.
func FlipVertical(img image.Image) image.Image {
	return imaging.FlipV(img)
}

// Resize scales the image using bilinear interpolation.
//
// If both width and height are positive the output is exactly that size,
// with no aspect-ratio preservation. If exactly one is positive the other
// is derived from the source aspect ratio (round half up). If neither is
// positive the call is a no-op and returns a clone of the source.
func Resize(img image.Image, width, height int) image.Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == 0 && height == 0 {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, height, imaging.Linear)
}

// CropCenter extracts a rectangle of at most targetWidth x targetHeight
// centered on the image midpoint. The crop origin uses floor division and
// the window is clamped to the source bounds, so a source smaller than
// the target yields the full source dimension on that axis rather than
// failing. Non-positive targets return a clone of the source.
func CropCenter(img image.Image, targetWidth, targetHeight int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if targetWidth <= 0 || targetHeight <= 0 {
		return imaging.Clone(img)
	}
	if targetWidth > w {
		targetWidth = w
	}
	if targetHeight > h {
		targetHeight = h
	}

	x := bounds.Min.X + (w-targetWidth)/2
	y := bounds.Min.Y + (h-targetHeight)/2
	return imaging.Crop(img, image.Rect(x, y, x+targetWidth, y+targetHeight))
}

// Grayscale converts the image to its luminance-weighted grayscale.
func Grayscale(img image.Image) image.Image {
	return effect.Grayscale(img)
}

// Brightness scales every channel by 1+amount: -1 yields black, 0 leaves
// the image unchanged, 1 doubles channel values. Values outside [-1, 1]
// are clamped.
func Brightness(img image.Image, amount float64) image.Image {
	if amount < -1 {
		amount = -1
	}
	if amount > 1 {
		amount = 1
	}
	return adjust.Brightness(img, amount)
}
