package arkprop

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"gopkg.in/yaml.v3"
	"math"
	"strconv"
)

// MarshalYAML renders a decoded value as YAML, keeping struct members in buffer order.
func MarshalYAML(value any, opts RenderOptions) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(cmpOr(opts.Indent, 2))

	if err := enc.Encode(yamlNode(value, opts.Keys)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}

func yamlNode(value any, keys KeyStyle) *yaml.Node {
	switch v := value.(type) {
	case nil:
		return yamlScalar("!!null", "null")

	case *Struct:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, member := range v.All() {
			node.Content = append(node.Content, yamlScalar("!!str", keys.apply(key)), yamlNode(member, keys))
		}

		return node

	case *Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range v.Elements {
			node.Content = append(node.Content, yamlNode(element, keys))
		}

		return node

	case ObjectRef:
		if v.IsNull() {
			return yamlScalar("!!null", "null")
		}

		return yamlScalar("!!str", v.String())

	case Opaque:
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
			yamlScalar("!!str", StructTypeKey), yamlScalar("!!str", v.Type),
			yamlScalar("!!str", rawKey), yamlScalar("!!binary", base64.StdEncoding.EncodeToString(v.Raw)),
		}}

	case bool:
		return yamlScalar("!!bool", strconv.FormatBool(v))

	case float32:
		return yamlScalar("!!float", yamlFloat(float64(v), 32))

	case float64:
		return yamlScalar("!!float", yamlFloat(v, 64))

	case string:
		return yamlScalar("!!str", v)

	case int8, uint8, int16, uint16, int32, uint32, int64, uint64:
		return yamlScalar("!!int", fmt.Sprint(v))

	default:
		return yamlScalar("!!str", fmt.Sprint(v))
	}
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
}

func cmpOr(value, fallback int) int {
	if value > 0 {
		return value
	}

	return fallback
}
