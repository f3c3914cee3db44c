package arkprop

import (
	"cmp"
	"encoding"
	"errors"
	"fmt"
	"golang.org/x/exp/constraints"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}

// Unmarshal binds a Source onto target, which must be a non-nil pointer.
func Unmarshal(source Source, target any) error {
	return binder.Unmarshal(source, target)
}

func UnmarshalNew[T any](source Source) (T, error) {
	return UnmarshalNewWith[T](&binder, source)
}

func UnmarshalNewWith[T any](b *Binder, source Source) (T, error) {
	var target T
	err := b.Unmarshal(source, &target)
	return target, err
}

// Bind binds a decoded value, e.g. a *Struct, onto target.
func Bind(value any, target any) error {
	return Unmarshal(SourceOf(value), target)
}

// A setter sets the reflect.Value to a value extracted from the given Source
type setter func(Source, reflect.Value) error

// A set of types that are currently in construction
type typeSet map[reflect.Type]struct{}

var tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// decoded values that are assigned as they are
var rawTypes = []reflect.Type{
	reflect.TypeFor[*Struct](),
	reflect.TypeFor[*Array](),
	reflect.TypeFor[ObjectRef](),
	reflect.TypeFor[Opaque](),
}

// The default Binder instance.
var binder Binder

// Binder binds decoded trees onto Go values. Struct fields are matched by the "ark"
// struct tag, or by their field name. A Binder caches per type and is safe for concurrent use.
type Binder struct {
	// the struct tag that is used
	structTag string

	// Cache for setters, indexed by reflect.Type
	setterCache sync.Map

	// Set to true to fail with ErrNoValue if a struct member is missing
	requireValues bool
}

func NewBinder() *Binder {
	return &Binder{structTag: "ark"}
}

func (b *Binder) WithTag(structTag string) *Binder {
	if b.structTag == structTag {
		return b
	}

	return &Binder{
		structTag:     structTag,
		requireValues: b.requireValues,
	}
}

func (b *Binder) RequireValues() *Binder {
	if b.requireValues {
		return b
	}

	return &Binder{
		structTag:     b.structTag,
		requireValues: true,
	}
}

func (b *Binder) Unmarshal(source Source, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
		return fmt.Errorf("target %T: %w", target, ErrNotSupported)
	}

	targetValue = targetValue.Elem()

	setter, err := b.setterOf(typeSet{}, targetValue.Type())
	if err != nil {
		return err
	}

	return setter(source, targetValue)
}

func (b *Binder) setterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if cached, ok := b.setterCache.Load(ty); ok {
		return cached.(setter), nil
	}

	if _, ok := inConstruction[ty]; ok {
		// recursive type, the setter is in the cache by the time this one runs
		lazySetter := func(source Source, target reflect.Value) error {
			cached, _ := b.setterCache.Load(ty)
			return cached.(setter)(source, target)
		}

		return lazySetter, nil
	}

	inConstruction[ty] = struct{}{}

	setter, err := b.makeSetterOf(inConstruction, ty)
	if err != nil {
		return nil, err
	}

	b.setterCache.Store(ty, setter)

	return setter, nil
}

func (b *Binder) makeSetterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if slices.Contains(rawTypes, ty) || (ty.Kind() == reflect.Interface && ty.NumMethod() == 0) {
		return setRaw, nil
	}

	if reflect.PointerTo(ty).Implements(tyTextUnmarshaler) {
		return setTextUnmarshaler, nil
	}

	switch ty.Kind() {
	case reflect.Bool:
		return setBool, nil

	case reflect.Int, reflect.Int64:
		return makeSetInt(BinarySource.Int64), nil
	case reflect.Int8:
		return makeSetInt(BinarySource.Int8), nil
	case reflect.Int16:
		return makeSetInt(BinarySource.Int16), nil
	case reflect.Int32:
		return makeSetInt(BinarySource.Int32), nil

	case reflect.Uint, reflect.Uint64:
		return makeSetUint(BinarySource.Uint64), nil
	case reflect.Uint8:
		return makeSetUint(BinarySource.Uint8), nil
	case reflect.Uint16:
		return makeSetUint(BinarySource.Uint16), nil
	case reflect.Uint32:
		return makeSetUint(BinarySource.Uint32), nil

	case reflect.Float32, reflect.Float64:
		return setFloat, nil

	case reflect.String:
		return setString, nil

	case reflect.Pointer:
		return b.makeSetPointer(inConstruction, ty)

	case reflect.Struct:
		return b.makeSetStruct(inConstruction, ty)

	case reflect.Slice:
		return b.makeSetSlice(inConstruction, ty)

	case reflect.Array:
		return b.makeSetArray(inConstruction, ty)

	case reflect.Map:
		return b.makeSetMap(inConstruction, ty)

	default:
		return nil, NotSupportedError{Type: ty}
	}
}

func (b *Binder) makeSetStruct(inConstruction typeSet, ty reflect.Type) (setter, error) {
	structTag := b.structTag
	if structTag == "" {
		structTag = "ark"
	}

	fields := fieldsOf(ty, structTag)

	setters := make([]setter, 0, len(fields))
	for _, field := range fields {
		var fieldSetter setter
		var err error

		if field.Indexed {
			fieldSetter, err = b.makeSetIndexed(inConstruction, field)
		} else {
			fieldSetter, err = b.setterOf(inConstruction, field.Type)
		}

		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.Name, err)
		}

		setters = append(setters, fieldSetter)
	}

	setter := func(source Source, target reflect.Value) error {
		for idx, field := range fields {
			fieldValue := target.FieldByIndex(field.Index)

			if field.Indexed {
				if err := setters[idx](source, fieldValue); err != nil {
					return fmt.Errorf("set field %q on %q: %w", field.Name, target.Type(), err)
				}

				continue
			}

			fieldSource, err := source.Get(field.Name)
			switch {
			case errors.Is(err, ErrNoValue):
				if b.requireValues {
					return fmt.Errorf("field %q: %w", field.Name, err)
				}

				continue

			case err != nil:
				return fmt.Errorf("lookup member %q: %w", field.Name, err)
			}

			if err := setters[idx](fieldSource, fieldValue); err != nil {
				return fmt.Errorf("set field %q on %q: %w", field.Name, target.Type(), err)
			}
		}

		return nil
	}

	return setter, nil
}

// makeSetIndexed collects the members Name, Name[1], Name[2], ... of a struct source
// into a slice, ordered by their index.
func (b *Binder) makeSetIndexed(inConstruction typeSet, f field) (setter, error) {
	elementSetter, err := b.setterOf(inConstruction, f.Type.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", f.Type, err)
	}

	type indexedSource struct {
		Index  int
		Source Source
	}

	setter := func(source Source, target reflect.Value) error {
		keyValues, err := source.KeyValues()
		if err != nil {
			return fmt.Errorf("iterate members: %w", err)
		}

		var members []indexedSource
		for keySource, valueSource := range keyValues {
			key, err := keySource.String()
			if err != nil {
				return fmt.Errorf("member key: %w", err)
			}

			if index, ok := memberIndex(key, f.Name); ok {
				members = append(members, indexedSource{Index: index, Source: valueSource})
			}
		}

		if len(members) == 0 {
			if b.requireValues {
				return fmt.Errorf("field %q: %w", f.Name, ErrNoValue)
			}

			return nil
		}

		slices.SortFunc(members, func(x, y indexedSource) int { return cmp.Compare(x.Index, y.Index) })

		sliceValue := reflect.MakeSlice(f.Type, len(members), len(members))
		for idx, member := range members {
			if err := elementSetter(member.Source, sliceValue.Index(idx)); err != nil {
				return fmt.Errorf("set element %s: %w", indexedKey(f.Name, member.Index), err)
			}
		}

		target.Set(sliceValue)
		return nil
	}

	return setter, nil
}

// memberIndex parses the index of a member key "name" or "name[index]".
func memberIndex(key, name string) (int, bool) {
	if key == name {
		return 0, true
	}

	rest, ok := strings.CutPrefix(key, name+"[")
	if !ok {
		return 0, false
	}

	rest, ok = strings.CutSuffix(rest, "]")
	if !ok {
		return 0, false
	}

	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 {
		return 0, false
	}

	return index, true
}

func indexedKey(name string, index int) string {
	return Property{Name: name, Index: uint32(index)}.Key()
}

func (b *Binder) makeSetMap(inConstruction typeSet, ty reflect.Type) (setter, error) {
	keySetter, err := b.setterOf(inConstruction, ty.Key())
	if err != nil {
		return nil, fmt.Errorf("setter for key type %q: %w", ty, err)
	}

	valueSetter, err := b.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for value type %q: %w", ty, err)
	}

	setter := func(source Source, target reflect.Value) error {
		keyValues, err := source.KeyValues()
		if err != nil {
			return fmt.Errorf("iterate members: %w", err)
		}

		mapTarget := reflect.MakeMap(ty)

		for keySource, valueSource := range keyValues {
			keyTarget := reflect.New(ty.Key()).Elem()
			if err := keySetter(keySource, keyTarget); err != nil {
				return fmt.Errorf("set key: %w", err)
			}

			valueTarget := reflect.New(ty.Elem()).Elem()
			if err := valueSetter(valueSource, valueTarget); err != nil {
				return fmt.Errorf("set value of %v: %w", keyTarget, err)
			}

			mapTarget.SetMapIndex(keyTarget, valueTarget)
		}

		target.Set(mapTarget)
		return nil
	}

	return setter, nil
}

func (b *Binder) makeSetSlice(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := b.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	setter := func(source Source, target reflect.Value) error {
		elements, err := source.Iter()
		if err != nil {
			return fmt.Errorf("as iter: %w", err)
		}

		sliceValue := reflect.MakeSlice(ty, 0, 0)
		zero := reflect.New(ty.Elem()).Elem()

		for element := range elements {
			sliceValue = reflect.Append(sliceValue, zero)

			idx := sliceValue.Len() - 1
			if err := elementSetter(element, sliceValue.Index(idx)); err != nil {
				return fmt.Errorf("set element idx=%d: %w", idx, err)
			}
		}

		target.Set(sliceValue)
		return nil
	}

	return setter, nil
}

// makeSetArray fills a fixed size array from the front. Surplus elements of the source
// are ignored, missing ones keep their zero value.
func (b *Binder) makeSetArray(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := b.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	elementCount := ty.Len()

	setter := func(source Source, target reflect.Value) error {
		elements, err := source.Iter()
		if err != nil {
			return fmt.Errorf("as iter: %w", err)
		}

		next, stop := iter.Pull(elements)
		defer stop()

		for idx := range elementCount {
			element, ok := next()
			if !ok {
				break
			}

			if err := elementSetter(element, target.Index(idx)); err != nil {
				return fmt.Errorf("set element idx=%d: %w", idx, err)
			}
		}

		return nil
	}

	return setter, nil
}

func (b *Binder) makeSetPointer(inConstruction typeSet, ty reflect.Type) (setter, error) {
	pointeeSetter, err := b.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, err
	}

	setter := func(source Source, target reflect.Value) error {
		if raw, ok := source.(RawSource); ok {
			if ref, ok := raw.Raw().(ObjectRef); ok && ref.IsNull() {
				// null references leave the pointer nil
				return nil
			}
		}

		pointee := reflect.New(ty.Elem())
		if err := pointeeSetter(source, pointee.Elem()); err != nil {
			return err
		}

		target.Set(pointee)
		return nil
	}

	return setter, nil
}

func setRaw(source Source, target reflect.Value) error {
	raw, ok := source.(RawSource)
	if !ok {
		return ErrNotSupported
	}

	value := reflect.ValueOf(raw.Raw())
	if !value.IsValid() {
		return nil
	}

	if !value.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("assign %s to %s: %w", value.Type(), target.Type(), ErrNotSupported)
	}

	target.Set(value)
	return nil
}

func setBool(source Source, target reflect.Value) error {
	boolValue, err := source.Bool()
	if err != nil {
		return fmt.Errorf("get bool value: %w", err)
	}

	target.SetBool(boolValue)
	return nil
}

func makeSetInt[T constraints.Signed](get func(BinarySource) (T, error)) setter {
	return func(source Source, target reflect.Value) error {
		var intValue int64

		if binarySource, ok := source.(BinarySource); ok {
			value, err := get(binarySource)
			if err != nil {
				return fmt.Errorf("get %T value: %w", value, err)
			}

			intValue = int64(value)
		} else {
			value, err := source.Int()
			if err != nil {
				return fmt.Errorf("get int value: %w", err)
			}

			intValue = value
		}

		if target.OverflowInt(intValue) {
			return fmt.Errorf("invalid %s value %d: %w", target.Type(), intValue, strconv.ErrRange)
		}

		target.SetInt(intValue)
		return nil
	}
}

func makeSetUint[T constraints.Unsigned](get func(BinarySource) (T, error)) setter {
	return func(source Source, target reflect.Value) error {
		var uintValue uint64

		if binarySource, ok := source.(BinarySource); ok {
			value, err := get(binarySource)
			if err != nil {
				return fmt.Errorf("get %T value: %w", value, err)
			}

			uintValue = uint64(value)
		} else {
			value, err := source.Uint()
			if err != nil {
				return fmt.Errorf("get uint value: %w", err)
			}

			uintValue = value
		}

		if target.OverflowUint(uintValue) {
			return fmt.Errorf("invalid %s value %d: %w", target.Type(), uintValue, strconv.ErrRange)
		}

		target.SetUint(uintValue)
		return nil
	}
}

func setFloat(source Source, target reflect.Value) error {
	var floatValue float64
	var err error

	if binarySource, ok := source.(BinarySource); ok && target.Kind() == reflect.Float32 {
		var value float32
		value, err = binarySource.Float32()
		floatValue = float64(value)
	} else {
		floatValue, err = source.Float()
	}

	if err != nil {
		return fmt.Errorf("get float value: %w", err)
	}

	target.SetFloat(floatValue)
	return nil
}

func setString(source Source, target reflect.Value) error {
	stringValue, err := source.String()
	if err != nil {
		return fmt.Errorf("get string value: %w", err)
	}

	target.SetString(stringValue)
	return nil
}

func setTextUnmarshaler(source Source, target reflect.Value) error {
	text, err := source.String()
	if err != nil {
		return fmt.Errorf("get string value: %w", err)
	}

	m := target.Addr().Interface().(encoding.TextUnmarshaler)
	return m.UnmarshalText([]byte(text))
}
