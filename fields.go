package arkprop

import (
	"reflect"
	"slices"
	"strings"
)

type field struct {
	Name  string
	Type  reflect.Type
	Index []int

	// Indexed collects the members Name, Name[1], Name[2], ... into a slice
	Indexed bool
}

type fieldTag struct {
	Name     string
	Explicit bool
	Indexed  bool
}

// fieldsOf lists the fields of a struct type that can be bound. Fields of embedded
// structs are promoted. A field at a shallower depth hides deeper fields of the same
// name. If more than one field remains, a single explicitly tagged field wins, otherwise
// the name is dropped.
func fieldsOf(ty reflect.Type, structTag string) []field {
	type embedded struct {
		Type  reflect.Type
		Index []int
	}

	type candidate struct {
		field
		Explicit bool
	}

	queue := []embedded{{Type: ty}}
	candidates := map[string][]candidate{}

	var order []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for idx := range current.Type.NumField() {
			fi := current.Type.Field(idx)
			if !fi.IsExported() {
				continue
			}

			tag, ok := parseFieldTag(fi, structTag)
			if !ok {
				continue
			}

			index := append(slices.Clip(current.Index), idx)

			if fi.Anonymous && !tag.Explicit {
				// pointers to embedded structs are not followed
				if fi.Type.Kind() == reflect.Struct {
					queue = append(queue, embedded{Type: fi.Type, Index: index})
				}

				continue
			}

			if _, seen := candidates[tag.Name]; !seen {
				order = append(order, tag.Name)
			}

			candidates[tag.Name] = append(candidates[tag.Name], candidate{
				field: field{
					Name:    tag.Name,
					Type:    fi.Type,
					Index:   index,
					Indexed: tag.Indexed && fi.Type.Kind() == reflect.Slice,
				},
				Explicit: tag.Explicit,
			})
		}
	}

	var fields []field

	for _, name := range order {
		// candidates are in breadth first order, the shallowest come first
		all := candidates[name]

		var shallowest, explicit []candidate
		for _, c := range all {
			if len(c.Index) != len(all[0].Index) {
				break
			}

			shallowest = append(shallowest, c)
			if c.Explicit {
				explicit = append(explicit, c)
			}
		}

		switch {
		case len(shallowest) == 1:
			fields = append(fields, shallowest[0].field)
		case len(explicit) == 1:
			fields = append(fields, explicit[0].field)
		}
	}

	return fields
}

// parseFieldTag reads the name and options of a field. Returns false if the
// field is skipped using "-".
func parseFieldTag(fi reflect.StructField, structTag string) (fieldTag, bool) {
	tag := fi.Tag.Get(structTag)
	if tag == "-" {
		return fieldTag{}, false
	}

	name, options, _ := strings.Cut(tag, ",")

	parsed := fieldTag{Name: name, Explicit: name != ""}
	if name == "" {
		parsed.Name = fi.Name
	}

	for _, option := range strings.Split(options, ",") {
		if option == "indexed" {
			parsed.Indexed = true
		}
	}

	return parsed, true
}
