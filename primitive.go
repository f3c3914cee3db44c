package arkprop

import (
	"encoding/binary"
	"fmt"
	"math"
)

// scalar reads a fixed width little endian value. The width depends only on
// the type. A declared size that does not match the type is reported, but the
// fixed width is read regardless.
func (r *reader) scalar(ty PropertyType, offset, declared int) (Result[any], error) {
	width := ty.width()
	if width == 0 {
		return Result[any]{}, decodeErr("decode scalar", offset,
			fmt.Errorf("%w: %s is not a scalar", ErrUnknownPropertyType, ty))
	}

	b, err := r.bytes(offset, width)
	if err != nil {
		return Result[any]{}, err
	}

	r.checkSize(offset, declared, ty.declaredWidth(), ty.String())

	var value any
	switch ty {
	case TypeBool:
		value = b[0] != 0
	case TypeByte, TypeInt8:
		value = int8(b[0])
	case TypeUInt8:
		value = b[0]
	case TypeInt16:
		value = int16(binary.LittleEndian.Uint16(b))
	case TypeUInt16:
		value = binary.LittleEndian.Uint16(b)
	case TypeInt32:
		value = int32(binary.LittleEndian.Uint32(b))
	case TypeUInt32:
		value = binary.LittleEndian.Uint32(b)
	case TypeInt64:
		value = int64(binary.LittleEndian.Uint64(b))
	case TypeUInt64:
		value = binary.LittleEndian.Uint64(b)
	case TypeFloat:
		value = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case TypeDouble:
		value = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}

	return Result[any]{Value: value, BytesRead: width}, nil
}
