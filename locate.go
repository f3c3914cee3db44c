package arkprop

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// RootSearchWindow is the number of leading bytes LocateRoot searches.
const RootSearchWindow = 0xFFF

// DefaultRoots are the root struct member names of profile and tribe saves.
var DefaultRoots = []string{"TribeData", "MyArkData", "AscensionData", "MyData"}

// LocateRoot finds the first of the given member names, encoded as a length
// prefixed string, within the first RootSearchWindow bytes of buf. The returned
// offset points at the length prefix and can be passed to Decoder.Struct.
func LocateRoot(buf []byte, names ...string) (int, string, error) {
	if len(names) == 0 {
		names = DefaultRoots
	}

	window := buf[:min(len(buf), RootSearchWindow)]

	for _, name := range names {
		if idx := bytes.Index(window, encodedName(name)); idx >= 0 {
			return idx, name, nil
		}
	}

	return 0, "", fmt.Errorf("search for %s: %w", strings.Join(names, ", "), ErrRootNotFound)
}

func encodedName(name string) []byte {
	encoded := binary.LittleEndian.AppendUint32(nil, uint32(len(name)+1))
	return append(encoded, name...)
}
