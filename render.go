package arkprop

import (
	"fmt"
	"github.com/iancoleman/strcase"
	"strings"
)

// KeyStyle rewrites member keys of rendered output. The index suffix of
// disambiguated keys and StructTypeKey are kept as they are.
type KeyStyle int

const (
	KeysAsIs KeyStyle = iota
	KeysSnake
	KeysLowerCamel
)

func ParseKeyStyle(name string) (KeyStyle, error) {
	switch strings.ToLower(name) {
	case "", "asis":
		return KeysAsIs, nil
	case "snake":
		return KeysSnake, nil
	case "camel":
		return KeysLowerCamel, nil
	default:
		return 0, fmt.Errorf("key style %q: %w", name, ErrNotSupported)
	}
}

func (k KeyStyle) apply(key string) string {
	if k == KeysAsIs || key == StructTypeKey {
		return key
	}

	name, suffix := key, ""
	if idx := strings.IndexByte(key, '['); idx > 0 && strings.HasSuffix(key, "]") {
		name, suffix = key[:idx], key[idx:]
	}

	switch k {
	case KeysSnake:
		return strcase.ToSnake(name) + suffix
	case KeysLowerCamel:
		return strcase.ToLowerCamel(name) + suffix
	default:
		return key
	}
}

type RenderOptions struct {
	Keys KeyStyle

	// Indent is the number of spaces per nesting level. Zero renders JSON compact
	// and YAML with an indent of two.
	Indent int
}

// rawKey is the member under which the bytes of an opaque struct are rendered.
const rawKey = "_raw"
