package arkprop

import (
	"fmt"
	"golang.org/x/exp/constraints"
	"iter"
	"math"
	"strconv"
)

// SourceOf wraps a decoded value, e.g. the Value of a Result returned by
// Decoder.Struct, into a Source.
func SourceOf(value any) Source {
	switch v := value.(type) {
	case *Struct:
		return structSource{value: v}
	case *Array:
		return arraySource{value: v}
	default:
		return valueSource{value: value}
	}
}

type structSource struct {
	EmptySource
	value *Struct
}

var _ RawSource = structSource{}

func (s structSource) Raw() any {
	return s.value
}

func (s structSource) Get(key string) (Source, error) {
	member, ok := s.value.Get(key)
	if !ok {
		return nil, ErrNoValue
	}

	return SourceOf(member), nil
}

func (s structSource) KeyValues() (iter.Seq2[Source, Source], error) {
	it := func(yield func(Source, Source) bool) {
		for key, member := range s.value.All() {
			if !yield(valueSource{value: key}, SourceOf(member)) {
				return
			}
		}
	}

	return it, nil
}

type arraySource struct {
	EmptySource
	value *Array
}

var _ RawSource = arraySource{}

func (a arraySource) Raw() any {
	return a.value
}

func (a arraySource) Iter() (iter.Seq[Source], error) {
	it := func(yield func(Source) bool) {
		for _, element := range a.value.Elements {
			if !yield(SourceOf(element)) {
				return
			}
		}
	}

	return it, nil
}

// valueSource wraps scalars, strings, object references and opaque blobs.
type valueSource struct {
	EmptySource
	value any
}

var _ BinarySource = valueSource{}
var _ RawSource = valueSource{}

func (v valueSource) Raw() any {
	return v.value
}

func (v valueSource) Bool() (bool, error) {
	if b, ok := v.value.(bool); ok {
		return b, nil
	}

	return false, ErrNotSupported
}

func (v valueSource) Int() (int64, error) {
	switch value := v.value.(type) {
	case int8:
		return int64(value), nil
	case int16:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case uint8:
		return int64(value), nil
	case uint16:
		return int64(value), nil
	case uint32:
		return int64(value), nil
	case uint64:
		if value > math.MaxInt64 {
			return 0, fmt.Errorf("invalid int64 value %d: %w", value, strconv.ErrRange)
		}

		return int64(value), nil
	default:
		return 0, ErrNotSupported
	}
}

func (v valueSource) Uint() (uint64, error) {
	if value, ok := v.value.(uint64); ok {
		return value, nil
	}

	intValue, err := v.Int()
	if err != nil {
		return 0, err
	}

	if intValue < 0 {
		return 0, ErrNotSupported
	}

	return uint64(intValue), nil
}

func (v valueSource) Float() (float64, error) {
	switch value := v.value.(type) {
	case float32:
		return float64(value), nil
	case float64:
		return value, nil
	}

	intValue, err := v.Int()
	if err != nil {
		return 0, err
	}

	return float64(intValue), nil
}

func (v valueSource) String() (string, error) {
	switch value := v.value.(type) {
	case string:
		return value, nil
	case fmt.Stringer:
		// object references and opaque blobs
		return value.String(), nil
	default:
		return "", ErrNotSupported
	}
}

func (v valueSource) Int8() (int8, error)   { return narrowInt[int8](v) }
func (v valueSource) Int16() (int16, error) { return narrowInt[int16](v) }
func (v valueSource) Int32() (int32, error) { return narrowInt[int32](v) }
func (v valueSource) Int64() (int64, error) { return narrowInt[int64](v) }

func (v valueSource) Uint8() (uint8, error)   { return narrowUint[uint8](v) }
func (v valueSource) Uint16() (uint16, error) { return narrowUint[uint16](v) }
func (v valueSource) Uint32() (uint32, error) { return narrowUint[uint32](v) }
func (v valueSource) Uint64() (uint64, error) { return narrowUint[uint64](v) }

func (v valueSource) Float32() (float32, error) {
	if value, ok := v.value.(float32); ok {
		return value, nil
	}

	value, err := v.Float()
	return float32(value), err
}

func (v valueSource) Float64() (float64, error) {
	return v.Float()
}

func narrowInt[T constraints.Signed](v valueSource) (T, error) {
	if value, ok := v.value.(T); ok {
		return value, nil
	}

	intValue, err := v.Int()
	if err != nil {
		return 0, err
	}

	if int64(T(intValue)) != intValue {
		return 0, fmt.Errorf("invalid %T value %d: %w", T(0), intValue, strconv.ErrRange)
	}

	return T(intValue), nil
}

func narrowUint[T constraints.Unsigned](v valueSource) (T, error) {
	if value, ok := v.value.(T); ok {
		return value, nil
	}

	uintValue, err := v.Uint()
	if err != nil {
		return 0, err
	}

	if uint64(T(uintValue)) != uintValue {
		return 0, fmt.Errorf("invalid %T value %d: %w", T(0), uintValue, strconv.ErrRange)
	}

	return T(uintValue), nil
}
