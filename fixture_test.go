package arkprop

import (
	"encoding/binary"
	"math"
	"slices"
)

// helpers to build little endian test buffers

func u32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func str(s string) []byte {
	return slices.Concat(u32(uint32(len(s)+1)), []byte(s), []byte{0})
}

func none() []byte {
	return str("None")
}

// header encodes name, type tag, payload size, index and extra header strings.
func header(name, tag string, size int, index uint32, extra ...string) []byte {
	b := slices.Concat(str(name), str(tag), u32(uint32(size)), u32(index))
	for _, e := range extra {
		b = append(b, str(e)...)
	}

	return b
}

func intProp(name string, index uint32, v int32) []byte {
	return slices.Concat(header(name, "IntProperty", 4, index), u32(uint32(v)))
}

func floatProp(name string, v float32) []byte {
	return slices.Concat(header(name, "FloatProperty", 4, 0), u32(math.Float32bits(v)))
}

func boolProp(name string, v bool) []byte {
	var b byte
	if v {
		b = 1
	}

	return append(header(name, "BoolProperty", 0, 0), b)
}

func strProp(name, v string) []byte {
	payload := str(v)
	return slices.Concat(header(name, "StrProperty", len(payload), 0), payload)
}

func structProp(name, typeName string, index uint32, body []byte) []byte {
	return slices.Concat(header(name, "StructProperty", len(body), index, typeName), body)
}

func arrayProp(name, elementTag string, count uint32, elements []byte) []byte {
	payload := slices.Concat(u32(count), elements)
	return slices.Concat(header(name, "ArrayProperty", len(payload), 0, elementTag), payload)
}

func objectIndexProp(name string, index int32) []byte {
	return slices.Concat(header(name, "ObjectProperty", 8, 0), u32(0), u32(uint32(index)))
}
