package prosperworks

// Serialize maps the entity back to a JSON-ready object.
//
// Without arguments every declared field is emitted, unset scalars as nil.
// Nested entities and lists serialize recursively. Lazy relations are never
// emitted, resolved or not: they are derived, read-only values.
func (e *Entity) Serialize(fields ...string) map[string]any {
	if len(fields) == 0 {
		fields = e.schema.FieldNames()
	}

	out := make(map[string]any, len(fields))

	for _, name := range fields {
		if e.schema.IsLazy(name) {
			continue
		}

		value, ok := e.values[name]
		if !ok {
			if _, declared := e.schema.Field(name); !declared {
				continue
			}
		}

		switch v := value.(type) {
		case *Entity:
			out[name] = v.Serialize()
		case *ObjectList:
			out[name] = v.Serialize()
		case *SimpleList:
			out[name] = v.Serialize()
		default:
			out[name] = v
		}
	}

	return out
}
