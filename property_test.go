package arkprop

import (
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

func TestPropertyScalars(t *testing.T) {
	cases := []struct {
		Tag      string
		Payload  []byte
		Size     int
		Type     PropertyType
		Expected any
	}{
		{"BoolProperty", []byte{1}, 0, TypeBool, true},
		{"Int8Property", []byte{0xfe}, 1, TypeInt8, int8(-2)},
		{"UInt8Property", []byte{0xfe}, 1, TypeUInt8, uint8(254)},
		{"Int16Property", []byte{0xfe, 0xff}, 2, TypeInt16, int16(-2)},
		{"UInt16Property", []byte{0xfe, 0xff}, 2, TypeUInt16, uint16(0xfffe)},
		{"IntProperty", u32(0xfffffffe), 4, TypeInt32, int32(-2)},
		{"Int32Property", u32(3), 4, TypeInt32, int32(3)},
		{"UInt32Property", u32(0xfffffffe), 4, TypeUInt32, uint32(0xfffffffe)},
		{"Int64Property", slices.Concat(u32(0xfffffffe), u32(0xffffffff)), 8, TypeInt64, int64(-2)},
		{"UInt64Property", slices.Concat(u32(1), u32(1)), 8, TypeUInt64, uint64(1<<32 | 1)},
		{"FloatProperty", []byte{0, 0, 0x80, 0x3f}, 4, TypeFloat, float32(1)},
		{"DoubleProperty", []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, 8, TypeDouble, float64(1)},
	}

	for _, c := range cases {
		t.Run(c.Tag, func(t *testing.T) {
			buf := slices.Concat(header("Value", c.Tag, c.Size, 0), c.Payload)

			res, diagnostics, err := DecodeProperty(buf, 0)
			require.NoError(t, err)
			require.Empty(t, diagnostics)
			require.Equal(t, len(buf), res.BytesRead)
			require.Equal(t, Property{
				Name:  "Value",
				Type:  c.Type,
				Size:  c.Size,
				Value: c.Expected,
			}, res.Value)
		})
	}
}

func TestPropertyByte(t *testing.T) {
	// the extra string in front of the payload is kept, not interpreted
	buf := slices.Concat(header("Color", "ByteProperty", 1, 0, "None"), []byte{0x07})

	res, diagnostics, err := DecodeProperty(buf, 0)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Equal(t, len(buf), res.BytesRead)
	require.Equal(t, Property{Name: "Color", Type: TypeByte, Nested: "None", Size: 1, Value: int8(7)}, res.Value)
}

func TestPropertyStrAndName(t *testing.T) {
	payload := str("Tribe of Rex")
	buf := slices.Concat(
		header("TribeName", "StrProperty", len(payload), 0), payload,
		header("Tag", "NameProperty", len(payload), 2), payload,
	)

	first, _, err := DecodeProperty(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "Tribe of Rex", first.Value.Value)
	require.Equal(t, "TribeName", first.Value.Key())

	second, _, err := DecodeProperty(buf, first.BytesRead)
	require.NoError(t, err)
	require.Equal(t, TypeName, second.Value.Type)
	require.Equal(t, "Tag[2]", second.Value.Key())
	require.Equal(t, len(buf), first.BytesRead+second.BytesRead)
}

func TestPropertyObject(t *testing.T) {
	buf := objectIndexProp("Owner", 42)

	res, _, err := DecodeProperty(buf, 0)
	require.NoError(t, err)
	require.Equal(t, ObjectRef{Kind: RefIndex, Index: 42}, res.Value.Value)
	require.Equal(t, len(buf), res.BytesRead)
}

func TestPropertyArray(t *testing.T) {
	buf := arrayProp("Levels", "IntProperty", 2, slices.Concat(u32(1), u32(2)))

	res, diagnostics, err := DecodeProperty(buf, 0)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Equal(t, len(buf), res.BytesRead)
	require.Equal(t, "IntProperty", res.Value.Nested)
	require.Equal(t, &Array{ElementType: TypeInt32, Elements: []any{int32(1), int32(2)}}, res.Value.Value)
}

func TestPropertyStruct(t *testing.T) {
	body := slices.Concat(intProp("A", 0, 1), none())
	buf := structProp("Inner", "InnerStruct", 0, body)

	res, diagnostics, err := DecodeProperty(buf, 0)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Equal(t, len(buf), res.BytesRead)
	require.Equal(t, "InnerStruct", res.Value.Nested)
	require.Equal(t, len(body), res.Value.Size)

	inner := res.Value.Value.(*Struct)
	require.Equal(t, "InnerStruct", inner.Type)
	require.Equal(t, 1, inner.Len())
}

func TestPropertyBackToBack(t *testing.T) {
	props := [][]byte{
		intProp("A", 0, 1),
		boolProp("B", false),
		strProp("C", "c"),
		objectIndexProp("D", 3),
		arrayProp("E", "StrProperty", 1, str("e")),
		structProp("F", "Vector", 0, make([]byte, 12)),
	}

	buf := slices.Concat(props...)

	offset := 0
	for _, prop := range props {
		res, _, err := DecodeProperty(buf, offset)
		require.NoError(t, err)
		require.Equal(t, len(prop), res.BytesRead)
		offset += res.BytesRead
	}

	require.Equal(t, len(buf), offset)
}

func TestPropertyUnknownType(t *testing.T) {
	buf := slices.Concat(header("Map", "MapProperty", 4, 0), u32(0))

	res, diagnostics, err := DecodeProperty(buf, 0)
	require.ErrorIs(t, err, ErrUnknownPropertyType)
	require.Equal(t, Result[Property]{}, res)
	require.Empty(t, diagnostics)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, len(str("Map")), decodeErr.Offset)
}

func TestPropertySentinel(t *testing.T) {
	_, _, err := DecodeProperty(none(), 0)
	require.ErrorIs(t, err, ErrUnexpectedSentinel)
}

func TestPropertyTruncatedHeader(t *testing.T) {
	buf := slices.Concat(str("A"), str("IntProperty"), u32(4))

	_, _, err := DecodeProperty(buf, 0)
	require.ErrorIs(t, err, ErrBufferUnderrun)
}

func TestParsePropertyType(t *testing.T) {
	ty, ok := ParsePropertyType("IntProperty")
	require.True(t, ok)
	require.Equal(t, TypeInt32, ty)

	for ty := TypeBool; ty <= TypeName; ty++ {
		parsed, ok := ParsePropertyType(ty.String())
		require.True(t, ok, ty.String())
		require.Equal(t, ty, parsed)
	}

	_, ok = ParsePropertyType("")
	require.False(t, ok)

	_, ok = ParsePropertyType("SoftObjectProperty")
	require.False(t, ok)

	require.Equal(t, "InvalidProperty", TypeInvalid.String())
}
