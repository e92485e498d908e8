package editlog

import (
	"fmt"
	"time"

	"github.com/pixeldesk/image-edit-mcp/internal/codec"
)

// Kind identifies one edit operation variant.
type Kind int

const (
	KindRotateRight Kind = iota
	KindRotateLeft
	KindFlipHorizontal
	KindFlipVertical
	KindResize
	KindConvertFormat
	KindGrayscale
	KindBrightness
)

// String returns the snake_case operation name used in tool calls and
// history listings.
func (k Kind) String() string {
	switch k {
	case KindRotateRight:
		return "rotate_right"
	case KindRotateLeft:
		return "rotate_left"
	case KindFlipHorizontal:
		return "flip_horizontal"
	case KindFlipVertical:
		return "flip_vertical"
	case KindResize:
		return "resize"
	case KindConvertFormat:
		return "convert_format"
	case KindGrayscale:
		return "grayscale"
	case KindBrightness:
		return "brightness"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operation is one immutable record in the edit log: the transformation
// kind plus the parameters that kind uses. Fields outside the variant's
// parameter set are zero and ignored during replay.
type Operation struct {
	Kind Kind

	// Width and Height parameterize KindResize. Zero means unset; an
	// unset dimension is derived from the aspect ratio at replay time,
	// and a resize with both unset replays as a no-op.
	Width  int
	Height int

	// To parameterizes KindConvertFormat. It has no pixel effect; the
	// record exists so the log is a complete audit trail of user intent.
	To codec.Format

	// Amount parameterizes KindBrightness, in [-1, 1].
	Amount float64

	// CreatedAt records when the operation was appended, for display.
	CreatedAt time.Time
}

// Describe returns a short human-readable summary for history listings.
func (op Operation) Describe() string {
	switch op.Kind {
	case KindResize:
		return fmt.Sprintf("%s %dx%d", op.Kind, op.Width, op.Height)
	case KindConvertFormat:
		return fmt.Sprintf("%s to %s", op.Kind, op.To)
	case KindBrightness:
		return fmt.Sprintf("%s %+.2f", op.Kind, op.Amount)
	default:
		return op.Kind.String()
	}
}

// RotateRight returns a clockwise quarter-turn operation.
func RotateRight() Operation {
	return Operation{Kind: KindRotateRight, CreatedAt: time.Now()}
}

// RotateLeft returns a counter-clockwise quarter-turn operation.
func RotateLeft() Operation {
	return Operation{Kind: KindRotateLeft, CreatedAt: time.Now()}
}

// FlipHorizontal returns a horizontal mirror operation.
func FlipHorizontal() Operation {
	return Operation{Kind: KindFlipHorizontal, CreatedAt: time.Now()}
}

// FlipVertical returns a vertical mirror operation.
func FlipVertical() Operation {
	return Operation{Kind: KindFlipVertical, CreatedAt: time.Now()}
}

// Resize returns a resize operation. Zero for either dimension leaves it
// unset; see Operation.Width.
func Resize(width, height int) Operation {
	return Operation{Kind: KindResize, Width: width, Height: height, CreatedAt: time.Now()}
}

// ConvertFormat returns a target-format record for the audit trail.
func ConvertFormat(to codec.Format) Operation {
	return Operation{Kind: KindConvertFormat, To: to, CreatedAt: time.Now()}
}

// Grayscale returns a grayscale conversion operation.
func Grayscale() Operation {
	return Operation{Kind: KindGrayscale, CreatedAt: time.Now()}
}

// Brightness returns a brightness adjustment operation.
func Brightness(amount float64) Operation {
	return Operation{Kind: KindBrightness, Amount: amount, CreatedAt: time.Now()}
}
