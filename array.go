package arkprop

import "fmt"

// Array is a homogeneous sequence of decoded values.
type Array struct {
	ElementType PropertyType
	Elements    []any
}

func (a *Array) Len() int {
	return len(a.Elements)
}

// array reads a count followed by that many bare elements. Elements carry
// neither a name nor a header.
func (r *reader) array(elementTag string, offset, declared int) (Result[*Array], error) {
	ty, ok := ParsePropertyType(elementTag)
	if !ok || ty == TypeArray {
		// nested arrays do not declare their element type
		return Result[*Array]{}, decodeErr("decode array", offset,
			fmt.Errorf("%w: %q", ErrUnsupportedElementType, elementTag))
	}

	count, err := r.uint32(offset)
	if err != nil {
		return Result[*Array]{}, err
	}

	bytesRead := 4

	// every element takes at least one byte, do not trust the count for the allocation
	elements := make([]any, 0, min(int(count), len(r.buf)-offset-bytesRead))

	for idx := range int(count) {
		element, err := r.element(ty, offset+bytesRead)
		if err != nil {
			return Result[*Array]{}, fmt.Errorf("decode element idx=%d: %w", idx, err)
		}

		elements = append(elements, element.Value)
		bytesRead += element.BytesRead
	}

	r.checkSize(offset, declared, bytesRead, "array of "+ty.String())

	array := &Array{ElementType: ty, Elements: elements}
	return Result[*Array]{Value: array, BytesRead: bytesRead}, nil
}

// element decodes a single array element by calling the codec of its type directly.
func (r *reader) element(ty PropertyType, offset int) (Result[any], error) {
	switch ty {
	case TypeStr, TypeName:
		res, err := r.str(offset, noSize)
		return erase(res), err

	case TypeObject:
		res, err := r.objectRef(offset, noSize)
		return erase(res), err

	case TypeStruct:
		return r.structValue(offset, noSize, "", false)

	default:
		return r.scalar(ty, offset, noSize)
	}
}
