// Package arkprop decodes the tagged property serialization found in ARK save files
// (*.arkprofile, *.arktribe) into a value tree, without a schema for the objects inside.
//
// A property is a name, a type tag, a common header of declared payload size and
// disambiguation index, optional type specific header fields and the payload. A struct
// is a sequence of properties terminated by the member name "None"; an array is a count
// followed by bare elements. [Decoder.Struct] walks such a buffer and returns a [Struct]
// together with the exact number of bytes read.
//
// Declared payload sizes are advisory. A mismatch is reported as a [Diagnostic] and
// never stops decoding. Everything else that can not be decoded, an unknown type tag,
// a malformed object reference or a read past the end of the buffer, fails the whole
// call with a [DecodeError].
//
// The decoded tree can be rendered using [WriteJSON] and [MarshalYAML], or bound onto Go
// types using [Bind] and the [Source] data model:
//
//	type Tribe struct {
//	    Name    string   `ark:"TribeName"`
//	    Members []string `ark:"MembersPlayerName,indexed"`
//	}
//
//	res, _, err := arkprop.DecodeStruct(buf, offset)
//	...
//	var tribe Tribe
//	err = arkprop.Bind(res.Value, &tribe)
package arkprop
