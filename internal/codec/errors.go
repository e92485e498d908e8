package codec

import "fmt"

// DecodeError indicates that input bytes could not be decoded as any
// supported raster format. It is always surfaced to the caller; decoding
// never silently substitutes a default image.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode image: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode image: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError indicates that a pixel buffer could not be encoded to the
// requested format, e.g. a zero-dimension buffer or an encoder failure.
type EncodeError struct {
	Format Format
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encode %s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("encode %s: %s", e.Format, e.Reason)
}

func (e *EncodeError) Unwrap() error { return e.Err }
