package arkprop

// PropertyType is the closed set of property type tags this package can decode.
type PropertyType int

const (
	TypeInvalid PropertyType = iota
	TypeBool
	TypeByte
	TypeInt8
	TypeUInt8
	TypeInt16
	TypeUInt16
	TypeInt32
	TypeUInt32
	TypeInt64
	TypeUInt64
	TypeFloat
	TypeDouble
	TypeObject
	TypeStruct
	TypeArray
	TypeStr
	TypeName
)

var propertyTypeNames = [...]string{
	TypeInvalid: "",
	TypeBool:    "BoolProperty",
	TypeByte:    "ByteProperty",
	TypeInt8:    "Int8Property",
	TypeUInt8:   "UInt8Property",
	TypeInt16:   "Int16Property",
	TypeUInt16:  "UInt16Property",
	TypeInt32:   "Int32Property",
	TypeUInt32:  "UInt32Property",
	TypeInt64:   "Int64Property",
	TypeUInt64:  "UInt64Property",
	TypeFloat:   "FloatProperty",
	TypeDouble:  "DoubleProperty",
	TypeObject:  "ObjectProperty",
	TypeStruct:  "StructProperty",
	TypeArray:   "ArrayProperty",
	TypeStr:     "StrProperty",
	TypeName:    "NameProperty",
}

// tag to type lookup, built once. IntProperty is an alias of Int32Property.
var propertyTypes = func() map[string]PropertyType {
	types := map[string]PropertyType{"IntProperty": TypeInt32}
	for ty, name := range propertyTypeNames {
		if name != "" {
			types[name] = PropertyType(ty)
		}
	}

	return types
}()

// ParsePropertyType maps a type tag as found in the buffer, e.g. "StructProperty",
// to its PropertyType.
func ParsePropertyType(tag string) (PropertyType, bool) {
	ty, ok := propertyTypes[tag]
	return ty, ok
}

func (t PropertyType) String() string {
	if t < 0 || int(t) >= len(propertyTypeNames) || t == TypeInvalid {
		return "InvalidProperty"
	}

	return propertyTypeNames[t]
}

// width returns the number of payload bytes of a fixed width scalar type.
func (t PropertyType) width() int {
	switch t {
	case TypeBool, TypeByte, TypeInt8, TypeUInt8:
		return 1
	case TypeInt16, TypeUInt16:
		return 2
	case TypeInt32, TypeUInt32, TypeFloat:
		return 4
	case TypeInt64, TypeUInt64, TypeDouble:
		return 8
	default:
		return 0
	}
}

// declaredWidth is the payload size a writer declares for a scalar type.
// A bool keeps its value byte next to the header and declares a size of zero.
func (t PropertyType) declaredWidth() int {
	if t == TypeBool {
		return 0
	}

	return t.width()
}

func (t PropertyType) isScalar() bool {
	return t.width() > 0
}
