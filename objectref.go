package arkprop

import "fmt"

type RefKind int

const (
	RefNull RefKind = iota
	RefIndex
	RefPath
)

// discriminants of an object reference payload
const (
	refByIndex uint32 = 0
	refByPath  uint32 = 1
	refNone    uint32 = 0xFFFFFFFF
)

// ObjectRef points at another object, either by a raw resource index or by a path.
// References are not resolved.
type ObjectRef struct {
	Kind  RefKind
	Index int32
	Path  string
}

func (o ObjectRef) IsNull() bool {
	return o.Kind == RefNull
}

// String returns the hexadecimal identifier of an index reference, e.g. "0x2a",
// the path of a path reference and "null" otherwise.
func (o ObjectRef) String() string {
	switch o.Kind {
	case RefIndex:
		return fmt.Sprintf("0x%x", o.Index)
	case RefPath:
		return o.Path
	default:
		return "null"
	}
}

func (r *reader) objectRef(offset, declared int) (Result[ObjectRef], error) {
	discriminant, err := r.uint32(offset)
	if err != nil {
		return Result[ObjectRef]{}, err
	}

	var res Result[ObjectRef]

	switch discriminant {
	case refByIndex:
		index, err := r.uint32(offset + 4)
		if err != nil {
			return Result[ObjectRef]{}, err
		}

		res = Result[ObjectRef]{Value: ObjectRef{Kind: RefIndex, Index: int32(index)}, BytesRead: 8}

	case refByPath:
		path, err := r.str(offset+4, noSize)
		if err != nil {
			return Result[ObjectRef]{}, err
		}

		res = Result[ObjectRef]{Value: ObjectRef{Kind: RefPath, Path: path.Value}, BytesRead: 4 + path.BytesRead}

	case refNone:
		res = Result[ObjectRef]{Value: ObjectRef{Kind: RefNull}, BytesRead: 4}

	default:
		return Result[ObjectRef]{}, decodeErr("decode object reference", offset,
			fmt.Errorf("%w: 0x%08x", ErrMalformedReference, discriminant))
	}

	r.checkSize(offset, declared, res.BytesRead, "object reference")

	return res, nil
}
