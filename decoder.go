package arkprop

import (
	"encoding/binary"
	"fmt"
	"go.uber.org/zap"
)

// noSize marks a payload whose size was not declared, e.g. array elements
// or the root struct.
const noSize = -1

const (
	defaultMaxMembers = 1 << 16
	defaultMaxDepth   = 128
)

// Result is the value produced by a decode call together with the exact
// number of bytes consumed, starting at the offset the call was made with.
type Result[T any] struct {
	Value     T
	BytesRead int
}

func erase[T any](r Result[T]) Result[any] {
	return Result[any]{Value: r.Value, BytesRead: r.BytesRead}
}

// The default Decoder instance.
var dec Decoder

// Decoder decodes tagged property buffers. The zero value is ready to use.
// A Decoder holds no per-call state and can be shared between goroutines.
type Decoder struct {
	log *zap.Logger

	// upper bound of members per struct before the sentinel must appear
	maxMembers int

	// upper bound of nested structs
	maxDepth int
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// WithLogger returns a Decoder that logs diagnostics to the given logger.
func (d *Decoder) WithLogger(log *zap.Logger) *Decoder {
	copied := *d
	copied.log = log
	return &copied
}

// WithMaxMembers returns a Decoder that fails with ErrMissingSentinel once a
// struct has more than n members.
func (d *Decoder) WithMaxMembers(n int) *Decoder {
	copied := *d
	copied.maxMembers = n
	return &copied
}

// WithMaxDepth returns a Decoder that fails with ErrTooDeep once structs are nested deeper than n.
func (d *Decoder) WithMaxDepth(n int) *Decoder {
	copied := *d
	copied.maxDepth = n
	return &copied
}

// Struct decodes the struct whose first member name starts at offset. The root
// struct has neither a declared size nor a type name, so it is always traversed.
func (d *Decoder) Struct(buf []byte, offset int) (Result[*Struct], []Diagnostic, error) {
	return run(d, buf, func(r *reader) (Result[*Struct], error) {
		res, err := r.structValue(offset, noSize, "", false)
		if err != nil {
			return Result[*Struct]{}, err
		}

		return Result[*Struct]{Value: res.Value.(*Struct), BytesRead: res.BytesRead}, nil
	})
}

// Property decodes one named property starting at its name.
func (d *Decoder) Property(buf []byte, offset int) (Result[Property], []Diagnostic, error) {
	return run(d, buf, func(r *reader) (Result[Property], error) {
		return r.property(offset)
	})
}

// Array decodes an array payload of the given element type tag, e.g. "IntProperty".
// Pass a negative declaredSize if the payload size is unknown.
func (d *Decoder) Array(buf []byte, offset int, elementTag string, declaredSize int) (Result[*Array], []Diagnostic, error) {
	return run(d, buf, func(r *reader) (Result[*Array], error) {
		return r.array(elementTag, offset, max(declaredSize, noSize))
	})
}

// ObjectRef decodes an object reference payload.
func (d *Decoder) ObjectRef(buf []byte, offset int, declaredSize int) (Result[ObjectRef], []Diagnostic, error) {
	return run(d, buf, func(r *reader) (Result[ObjectRef], error) {
		return r.objectRef(offset, max(declaredSize, noSize))
	})
}

// Scalar decodes a fixed width scalar payload of the given type.
func (d *Decoder) Scalar(buf []byte, offset int, ty PropertyType, declaredSize int) (Result[any], []Diagnostic, error) {
	return run(d, buf, func(r *reader) (Result[any], error) {
		return r.scalar(ty, offset, max(declaredSize, noSize))
	})
}

// DecodeStruct decodes a root struct using the default Decoder.
func DecodeStruct(buf []byte, offset int) (Result[*Struct], []Diagnostic, error) {
	return dec.Struct(buf, offset)
}

// DecodeProperty decodes a single property using the default Decoder.
func DecodeProperty(buf []byte, offset int) (Result[Property], []Diagnostic, error) {
	return dec.Property(buf, offset)
}

// ReadString reads a length prefixed string.
func ReadString(buf []byte, offset int) (Result[string], error) {
	res, _, err := run(&dec, buf, func(r *reader) (Result[string], error) {
		return r.str(offset, noSize)
	})

	return res, err
}

func run[T any](d *Decoder, buf []byte, decode func(*reader) (Result[T], error)) (Result[T], []Diagnostic, error) {
	r := d.newReader(buf)

	res, err := decode(r)
	if err != nil {
		// offsets past a fatal error are meaningless, so nothing partial is returned
		return Result[T]{}, r.diagnostics, err
	}

	return res, r.diagnostics, nil
}

// reader holds the state of a single decode call.
type reader struct {
	buf []byte
	log *zap.Logger

	maxMembers int
	maxDepth   int
	depth      int

	diagnostics []Diagnostic
}

func (d *Decoder) newReader(buf []byte) *reader {
	r := &reader{
		buf:        buf,
		log:        d.log,
		maxMembers: d.maxMembers,
		maxDepth:   d.maxDepth,
	}

	if r.log == nil {
		r.log = zap.NewNop()
	}

	if r.maxMembers <= 0 {
		r.maxMembers = defaultMaxMembers
	}

	if r.maxDepth <= 0 {
		r.maxDepth = defaultMaxDepth
	}

	return r
}

// bytes borrows n bytes at offset. The returned slice must not be modified.
func (r *reader) bytes(offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || n > len(r.buf)-offset {
		return nil, decodeErr("read", offset, fmt.Errorf("%w: need %d bytes, %d left",
			ErrBufferUnderrun, n, max(len(r.buf)-offset, 0)))
	}

	return r.buf[offset : offset+n], nil
}

func (r *reader) uint32(offset int) (uint32, error) {
	b, err := r.bytes(offset, 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// checkSize records a SizeMismatch if a declared size is present and differs from actual.
func (r *reader) checkSize(offset, declared, actual int, context string) {
	if declared == noSize || declared == actual {
		return
	}

	r.report(Diagnostic{
		Kind:     SizeMismatch,
		Offset:   offset,
		Expected: declared,
		Actual:   actual,
		Context:  context,
	})
}

func (r *reader) report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)

	r.log.Warn(d.Kind.String(),
		zap.Int("offset", d.Offset),
		zap.Int("expected", d.Expected),
		zap.Int("actual", d.Actual),
		zap.String("context", d.Context),
	)
}
