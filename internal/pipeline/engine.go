// Package pipeline replays an edit log against a pristine source image.
//
// Every run starts from the original bytes, never from a previous run's
// output, so operations compound on the unmodified source and the same
// log always produces the same result. Rendering a truncated log (undo
// preview) is just a replay with a shorter slice.
package pipeline

import (
	"image"

	"github.com/pixeldesk/image-edit-mcp/internal/codec"
	"github.com/pixeldesk/image-edit-mcp/internal/editlog"
	"github.com/pixeldesk/image-edit-mcp/internal/transform"
)

// Result is the output of one pipeline run. It is returned to the caller
// and not retained by the engine.
type Result struct {
	// Data is the encoded image.
	Data []byte

	// Width and Height are the dimensions after all operations.
	Width  int
	Height int

	// Format is the format actually written. It differs from the
	// requested format only when WEBP output falls back to PNG.
	Format codec.Format
}

// Apply decodes original once, replays ops in insertion order, and
// encodes the final buffer to target with the given quality (0 selects
// the codec default).
//
// Apply is a pure function: it holds no state between calls, so replaying
// the same arguments yields byte-identical output and concurrent calls
// need no locking. Decode and encode failures abort the run with typed
// errors (*codec.DecodeError, *codec.EncodeError); partial results are
// never returned. Malformed operations that slipped past append-time
// validation replay as no-ops rather than failing mid-run.
func Apply(original []byte, ops []editlog.Operation, target codec.Format, quality int) (*Result, error) {
	img, err := codec.Decode(original)
	if err != nil {
		return nil, err
	}

	for _, op := range ops {
		img = applyOp(img, op)
	}

	data, written, err := codec.Encode(img, target, quality)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Result{
		Data:   data,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: written,
	}, nil
}

func applyOp(img image.Image, op editlog.Operation) image.Image {
	switch op.Kind {
	case editlog.KindRotateRight:
		return transform.RotateRight(img)
	case editlog.KindRotateLeft:
		return transform.RotateLeft(img)
	case editlog.KindFlipHorizontal:
		return transform.FlipHorizontal(img)
	case editlog.KindFlipVertical:
		return transform.FlipVertical(img)
	case editlog.KindResize:
		if op.Width <= 0 && op.Height <= 0 {
			return img
		}
		return transform.Resize(img, op.Width, op.Height)
	case editlog.KindGrayscale:
		return transform.Grayscale(img)
	case editlog.KindBrightness:
		return transform.Brightness(img, op.Amount)
	case editlog.KindConvertFormat:
		// Format is applied at the final encode; the record is an
		// audit entry with no pixel effect.
		return img
	default:
		return img
	}
}
