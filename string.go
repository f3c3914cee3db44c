package arkprop

import (
	"fmt"
	"golang.org/x/text/encoding/unicode"
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// str reads a length prefixed, null terminated string. The length counts the
// terminator. A negative length announces UTF-16LE content of that many code units.
func (r *reader) str(offset, declared int) (Result[string], error) {
	length, err := r.uint32(offset)
	if err != nil {
		return Result[string]{}, err
	}

	var value string
	bytesRead := 4

	switch n := int32(length); {
	case n == 0:
		// empty string without a terminator

	case n > 0:
		content, err := r.bytes(offset+4, int(n))
		if err != nil {
			return Result[string]{}, err
		}

		value = string(content[:n-1])
		bytesRead += int(n)

	default:
		size := 2 * -int(n)
		content, err := r.bytes(offset+4, size)
		if err != nil {
			return Result[string]{}, err
		}

		decoded, err := utf16Decoder.NewDecoder().Bytes(content[:size-2])
		if err != nil {
			return Result[string]{}, decodeErr("decode string", offset, fmt.Errorf("utf-16: %w", err))
		}

		value = string(decoded)
		bytesRead += size
	}

	r.checkSize(offset, declared, bytesRead, "string")

	return Result[string]{Value: value, BytesRead: bytesRead}, nil
}
