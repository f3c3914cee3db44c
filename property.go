package arkprop

import (
	"fmt"
	"strconv"
)

// Property is a single named and typed value of a property bag.
type Property struct {
	Name string
	Type PropertyType

	// Nested is the struct type name of a StructProperty, the element type tag of
	// an ArrayProperty, or the extra string found in front of a ByteProperty payload.
	Nested string

	// Size is the declared payload size. It is advisory only.
	Size int

	// Index distinguishes properties sharing the same name within a struct.
	Index uint32

	Value any
}

// Key returns the member key of the property within its struct.
func (p Property) Key() string {
	if p.Index == 0 {
		return p.Name
	}

	return p.Name + "[" + strconv.FormatUint(uint64(p.Index), 10) + "]"
}

// property decodes a named property starting at its name.
func (r *reader) property(offset int) (Result[Property], error) {
	name, err := r.str(offset, noSize)
	if err != nil {
		return Result[Property]{}, fmt.Errorf("decode property name: %w", err)
	}

	if name.Value == sentinel {
		return Result[Property]{}, decodeErr("decode property", offset, ErrUnexpectedSentinel)
	}

	res, err := r.propertyBody(name.Value, offset+name.BytesRead)
	if err != nil {
		return Result[Property]{}, fmt.Errorf("decode property %q: %w", name.Value, err)
	}

	res.BytesRead += name.BytesRead
	return res, nil
}

// propertyBody decodes everything following the name of a property: its type tag,
// the common header of payload size and index, type specific header fields and the payload.
func (r *reader) propertyBody(name string, offset int) (Result[Property], error) {
	tag, err := r.str(offset, noSize)
	if err != nil {
		return Result[Property]{}, fmt.Errorf("decode type tag: %w", err)
	}

	ty, ok := ParsePropertyType(tag.Value)
	if !ok {
		return Result[Property]{}, decodeErr("decode property", offset,
			fmt.Errorf("%w: %q", ErrUnknownPropertyType, tag.Value))
	}

	bytesRead := tag.BytesRead

	size, err := r.uint32(offset + bytesRead)
	if err != nil {
		return Result[Property]{}, err
	}

	index, err := r.uint32(offset + bytesRead + 4)
	if err != nil {
		return Result[Property]{}, err
	}

	bytesRead += 8

	prop := Property{Name: name, Type: ty, Size: int(size), Index: index}

	switch ty {
	case TypeStruct, TypeArray, TypeByte:
		nested, err := r.str(offset+bytesRead, noSize)
		if err != nil {
			return Result[Property]{}, fmt.Errorf("decode %s header: %w", ty, err)
		}

		prop.Nested = nested.Value
		bytesRead += nested.BytesRead
	}

	payloadOffset := offset + bytesRead

	var payload Result[any]

	switch ty {
	case TypeStruct:
		payload, err = r.structValue(payloadOffset, prop.Size, prop.Nested, true)

	case TypeArray:
		var array Result[*Array]
		array, err = r.array(prop.Nested, payloadOffset, prop.Size)
		payload = erase(array)

	case TypeObject:
		var ref Result[ObjectRef]
		ref, err = r.objectRef(payloadOffset, prop.Size)
		payload = erase(ref)

	case TypeStr, TypeName:
		var str Result[string]
		str, err = r.str(payloadOffset, prop.Size)
		payload = erase(str)

	case TypeBool, TypeByte, TypeInt8, TypeUInt8, TypeInt16, TypeUInt16,
		TypeInt32, TypeUInt32, TypeInt64, TypeUInt64, TypeFloat, TypeDouble:
		payload, err = r.scalar(ty, payloadOffset, prop.Size)

	default:
		err = decodeErr("decode property", offset, fmt.Errorf("%w: %s", ErrUnknownPropertyType, ty))
	}

	if err != nil {
		return Result[Property]{}, err
	}

	prop.Value = payload.Value
	return Result[Property]{Value: prop, BytesRead: bytesRead + payload.BytesRead}, nil
}
