package search

import "strings"

// Schema is the static description of an entity's filterable fields:
// a mapping from field name to either a scalar FieldType or a nested
// schema. Dotted request keys are resolved against it segment by
// segment, which makes unknown-key detection deterministic without a
// live mapped-entity graph.
type Schema struct {
	fields map[string]fieldDef
}

type fieldDef struct {
	fieldType FieldType
	nested    *Schema
}

// NewSchema returns an empty schema. Declare fields with Field and
// Nested, then treat the schema as read-only.
func NewSchema() *Schema {
	return &Schema{fields: make(map[string]fieldDef)}
}

// Field declares a scalar field and returns the schema for chaining.
// Redeclaring a name overwrites the previous declaration.
func (s *Schema) Field(name string, ft FieldType) *Schema {
	s.fields[name] = fieldDef{fieldType: ft}
	return s
}

// Nested declares a field holding a nested entity and returns the schema
// for chaining. Keys address into it with dot notation, e.g. "spec.cpu".
func (s *Schema) Nested(name string, nested *Schema) *Schema {
	s.fields[name] = fieldDef{nested: nested}
	return s
}

// FieldRef is a resolved reference to a (possibly nested) field,
// carrying everything backends need to address it.
type FieldRef struct {
	// Key is the dotted key exactly as requested.
	Key string
	// Path holds the individual segments of Key.
	Path []string
	// Type is the declared scalar type of the field.
	Type FieldType
}

// Resolve walks key through the schema one dot segment at a time.
// Intermediate segments must name nested schemas and the final segment a
// scalar field; any miss yields a KeyNotFoundError carrying the full
// requested key.
func (s *Schema) Resolve(key string) (*FieldRef, error) {
	if key == "" {
		return nil, &KeyNotFoundError{Key: key}
	}

	segments := strings.Split(key, ".")
	current := s
	for i, segment := range segments {
		def, ok := current.fields[segment]
		if !ok {
			return nil, &KeyNotFoundError{Key: key}
		}

		if i == len(segments)-1 {
			if def.nested != nil {
				return nil, &KeyNotFoundError{Key: key}
			}
			return &FieldRef{Key: key, Path: segments, Type: def.fieldType}, nil
		}

		if def.nested == nil {
			return nil, &KeyNotFoundError{Key: key}
		}
		current = def.nested
	}

	return nil, &KeyNotFoundError{Key: key}
}
