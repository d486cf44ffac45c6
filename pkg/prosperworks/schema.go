package prosperworks

import "context"

// Kind tells the population engine how to treat a field.
type Kind int

const (
	// KindScalar values are assigned as decoded.
	KindScalar Kind = iota
	// KindNested values are objects populated into a nested Entity.
	KindNested
	// KindObjectList values are arrays of flat objects.
	KindObjectList
	// KindSimpleList values are arrays of opaque primitives.
	KindSimpleList
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNested:
		return "object"
	case KindObjectList, KindSimpleList:
		return "array"
	default:
		return "scalar"
	}
}

// Field is one entry of a schema's field table.
type Field struct {
	Name string
	Kind Kind
	// Schema describes the element type of KindNested and KindObjectList fields.
	Schema *Schema
}

// ResolveFunc computes the value of a lazy relation from its entity.
type ResolveFunc func(ctx context.Context, e *Entity) (any, error)

// LazyField is a read-only relation derived from another field with a
// follow-up request.
type LazyField struct {
	Name    string
	Resolve ResolveFunc
}

// Schema describes one resource type: where it lives, which fields it has and
// which keys the create and search operations accept.
type Schema struct {
	Name     string
	Endpoint string
	// IDField defaults to "id" when empty.
	IDField string
	Fields  []Field
	Lazy    []LazyField

	CreateFields []string
	SearchFields []string
}

// Identity returns the name of the id field.
func (s *Schema) Identity() string {
	if s.IDField == "" {
		return "id"
	}

	return s.IDField
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// FieldNames returns the declared field names in table order.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}

	return names
}

// IsLazy reports whether name is a lazy relation of the schema.
func (s *Schema) IsLazy(name string) bool {
	_, ok := s.lazyField(name)

	return ok
}

// Searchable reports whether the resource exposes POST <endpoint>/search.
func (s *Schema) Searchable() bool {
	return len(s.SearchFields) > 0
}

func (s *Schema) lazyField(name string) (LazyField, bool) {
	for _, l := range s.Lazy {
		if l.Name == name {
			return l, true
		}
	}

	return LazyField{}, false
}

// Scalars declares scalar fields.
func Scalars(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Kind: KindScalar})
	}

	return fields
}

// Nested declares a nested entity field.
func Nested(name string, schema *Schema) Field {
	return Field{Name: name, Kind: KindNested, Schema: schema}
}

// Objects declares a list of flat objects.
func Objects(name string, schema *Schema) Field {
	return Field{Name: name, Kind: KindObjectList, Schema: schema}
}

// Values declares a list of primitives.
func Values(name string) Field {
	return Field{Name: name, Kind: KindSimpleList}
}
