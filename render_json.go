package arkprop

import (
	"fmt"
	"github.com/go-faster/jx"
	"io"
	"math"
)

// WriteJSON renders a decoded value as JSON. Struct members keep buffer order,
// opaque structs render as an object holding the type name and the base64 encoded bytes.
func WriteJSON(w io.Writer, value any, opts RenderOptions) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	if opts.Indent > 0 {
		e.SetIdent(opts.Indent)
	}

	encodeJSON(e, value, opts.Keys)

	if _, err := w.Write(e.Bytes()); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}

func MarshalJSON(value any, opts RenderOptions) []byte {
	var e jx.Encoder
	if opts.Indent > 0 {
		e.SetIdent(opts.Indent)
	}

	encodeJSON(&e, value, opts.Keys)
	return e.Bytes()
}

func encodeJSON(e *jx.Encoder, value any, keys KeyStyle) {
	switch v := value.(type) {
	case nil:
		e.Null()

	case *Struct:
		e.ObjStart()
		for key, member := range v.All() {
			e.FieldStart(keys.apply(key))
			encodeJSON(e, member, keys)
		}
		e.ObjEnd()

	case *Array:
		e.ArrStart()
		for _, element := range v.Elements {
			encodeJSON(e, element, keys)
		}
		e.ArrEnd()

	case ObjectRef:
		if v.IsNull() {
			e.Null()
			return
		}

		e.Str(v.String())

	case Opaque:
		e.ObjStart()
		e.FieldStart(StructTypeKey)
		e.Str(v.Type)
		e.FieldStart(rawKey)
		e.Base64(v.Raw)
		e.ObjEnd()

	case bool:
		e.Bool(v)
	case int8:
		e.Int8(v)
	case uint8:
		e.UInt8(v)
	case int16:
		e.Int16(v)
	case uint16:
		e.UInt16(v)
	case int32:
		e.Int32(v)
	case uint32:
		e.UInt32(v)
	case int64:
		e.Int64(v)
	case uint64:
		e.UInt64(v)

	case float32:
		if isFinite(float64(v)) {
			e.Float32(v)
		} else {
			e.Null()
		}

	case float64:
		if isFinite(v) {
			e.Float64(v)
		} else {
			e.Null()
		}

	case string:
		e.Str(v)

	default:
		e.Str(fmt.Sprint(v))
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
