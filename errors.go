package arkprop

import (
	"errors"
	"fmt"
)

var ErrUnknownPropertyType = errors.New("unknown or unimplemented property type")
var ErrMalformedReference = errors.New("unexpected object header")
var ErrUnsupportedElementType = errors.New("unsupported element type")
var ErrBufferUnderrun = errors.New("buffer underrun")

// ErrMissingSentinel is returned when a struct does not reach its "None" terminator
// within the configured member limit.
var ErrMissingSentinel = errors.New("missing struct sentinel")
var ErrTooDeep = errors.New("nesting too deep")
var ErrUnexpectedSentinel = errors.New("unexpected struct sentinel")
var ErrRootNotFound = errors.New("root struct not found")

// DecodeError records the byte offset at which a fatal decode failure happened.
// Use errors.Is with one of the Err* values to check the cause.
type DecodeError struct {
	Offset int
	Op     string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(op string, offset int, err error) error {
	return &DecodeError{Offset: offset, Op: op, Err: err}
}
