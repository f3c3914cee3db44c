package arkprop

import (
	"bytes"
	"fmt"
	"github.com/elliotchance/orderedmap/v3"
	"iter"
	"strings"
)

// StructTypeKey is the reserved member key under which the type name of a
// struct is exposed, if known.
const StructTypeKey = "_structType"

// sentinel terminates the member list of a struct.
const sentinel = "None"

// Struct is a decoded property bag. Members are keyed by the property name, or
// by "name[index]" if the property carries a non-zero index. Members keep buffer order.
type Struct struct {
	Type    string
	Members *orderedmap.OrderedMap[string, any]
}

func NewStruct(typeName string) *Struct {
	return &Struct{
		Type:    typeName,
		Members: orderedmap.NewOrderedMap[string, any](),
	}
}

// Get returns the member with the given key. StructTypeKey yields the type name.
func (s *Struct) Get(key string) (any, bool) {
	if key == StructTypeKey && s.Type != "" {
		return s.Type, true
	}

	return s.Members.Get(key)
}

// All iterates the type name, if known, followed by all members in buffer order.
func (s *Struct) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if s.Type != "" && !yield(StructTypeKey, s.Type) {
			return
		}

		for key, value := range s.Members.AllFromFront() {
			if !yield(key, value) {
				return
			}
		}
	}
}

func (s *Struct) Len() int {
	return s.Members.Len()
}

// Opaque holds the undecoded bytes of a struct whose layout is not a property bag.
type Opaque struct {
	Type string
	Raw  []byte
}

func (o Opaque) String() string {
	return "<" + o.Type + ">" + string(o.Raw)
}

// IsTraversableStruct reports whether structs of the given type name are property
// bags. Other struct types are fixed binary blobs and are kept as Opaque.
// The list is empirical: it covers the type names seen in profile and tribe saves.
func IsTraversableStruct(typeName string) bool {
	switch typeName {
	case "ItemNetInfo", "LeaderboardRow", "TribeGovernment":
		return true
	}

	return strings.HasSuffix(typeName, "Struct") || strings.HasSuffix(typeName, "Data")
}

// structValue decodes a struct payload. known is false for the root struct and for
// array elements, which carry no type name and are always traversed. A known type
// name outside the allow list, the empty name included, keeps the payload opaque.
func (r *reader) structValue(offset, declared int, typeName string, known bool) (Result[any], error) {
	if known && declared != noSize && !IsTraversableStruct(typeName) {
		raw, err := r.bytes(offset, declared)
		if err != nil {
			return Result[any]{}, err
		}

		opaque := Opaque{Type: typeName, Raw: bytes.Clone(raw)}
		return Result[any]{Value: opaque, BytesRead: declared}, nil
	}

	if r.depth >= r.maxDepth {
		return Result[any]{}, decodeErr("decode struct", offset, ErrTooDeep)
	}

	r.depth++
	defer func() { r.depth-- }()

	value := NewStruct(typeName)
	bytesRead := 0

	for members := 0; ; members++ {
		memberOffset := offset + bytesRead

		name, err := r.str(memberOffset, noSize)
		if err != nil {
			return Result[any]{}, fmt.Errorf("decode member name: %w", err)
		}

		bytesRead += name.BytesRead

		if name.Value == sentinel {
			r.checkSize(offset, declared, bytesRead, "struct "+typeName)
			return Result[any]{Value: value, BytesRead: bytesRead}, nil
		}

		if members >= r.maxMembers {
			return Result[any]{}, decodeErr("decode struct", offset,
				fmt.Errorf("%w: more than %d members", ErrMissingSentinel, r.maxMembers))
		}

		prop, err := r.propertyBody(name.Value, offset+bytesRead)
		if err != nil {
			return Result[any]{}, fmt.Errorf("decode member %q: %w", name.Value, err)
		}

		key := prop.Value.Key()
		if value.Members.Has(key) {
			r.report(Diagnostic{Kind: DuplicateMember, Offset: memberOffset, Context: key})
		}

		value.Members.Set(key, prop.Value.Value)
		bytesRead += prop.BytesRead
	}
}

// Plain converts a decoded value into plain Go values: a *Struct becomes a
// map[string]any including StructTypeKey, an *Array becomes a []any, an ObjectRef
// becomes nil or its string form and an Opaque becomes its string form.
func Plain(value any) any {
	switch v := value.(type) {
	case *Struct:
		plain := make(map[string]any, v.Len()+1)
		for key, member := range v.All() {
			plain[key] = Plain(member)
		}

		return plain

	case *Array:
		plain := make([]any, len(v.Elements))
		for idx, element := range v.Elements {
			plain[idx] = Plain(element)
		}

		return plain

	case ObjectRef:
		if v.IsNull() {
			return nil
		}

		return v.String()

	case Opaque:
		return v.String()

	default:
		return value
	}
}
