package arkprop

import (
	"errors"
	"iter"
)

var ErrNoValue = errors.New("no value")
var ErrNotSupported = errors.New("not supported")

// Source is read access to one node of a decoded value tree, as consumed by
// Unmarshal. Use SourceOf to wrap a tree.
//
// Every method returns ErrNotSupported if the node can not be represented in the
// requested form: a struct has no String, an int32 has no Iter.
type Source interface {
	Bool() (bool, error)
	Int() (int64, error)
	Uint() (uint64, error)
	Float() (float64, error)
	String() (string, error)

	// Get returns the member with the given key. Returns ErrNoValue if the node is a
	// struct without that member.
	Get(key string) (Source, error)

	// KeyValues iterates over the members of a struct.
	KeyValues() (iter.Seq2[Source, Source], error)

	// Iter iterates over the elements of an array.
	Iter() (iter.Seq[Source], error)
}

// BinarySource is implemented by sources that keep the exact width of their value.
// Unmarshal prefers these methods over Source.Int, Source.Uint and Source.Float.
type BinarySource interface {
	Int8() (int8, error)
	Int16() (int16, error)
	Int32() (int32, error)
	Int64() (int64, error)

	Uint8() (uint8, error)
	Uint16() (uint16, error)
	Uint32() (uint32, error)
	Uint64() (uint64, error)

	Float32() (float32, error)
	Float64() (float64, error)
}

// RawSource is implemented by sources wrapping a decoded value. Raw returns that value
// unchanged, e.g. a *Struct or an ObjectRef.
type RawSource interface {
	Raw() any
}

// EmptySource returns ErrNotSupported for every method. Embed it to implement only a part of Source.
type EmptySource struct{}

var _ Source = EmptySource{}

func (EmptySource) Bool() (bool, error) {
	return false, ErrNotSupported
}

func (EmptySource) Int() (int64, error) {
	return 0, ErrNotSupported
}

func (EmptySource) Uint() (uint64, error) {
	return 0, ErrNotSupported
}

func (EmptySource) Float() (float64, error) {
	return 0, ErrNotSupported
}

func (EmptySource) String() (string, error) {
	return "", ErrNotSupported
}

func (EmptySource) Get(string) (Source, error) {
	return nil, ErrNotSupported
}

func (EmptySource) KeyValues() (iter.Seq2[Source, Source], error) {
	return nil, ErrNotSupported
}

func (EmptySource) Iter() (iter.Seq[Source], error) {
	return nil, ErrNotSupported
}
