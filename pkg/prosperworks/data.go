package prosperworks

import "sort"

// Data is a generic structured view of a JSON value. Objects expose their keys
// and nested objects become nested Data.
type Data struct {
	raw    any
	fields map[string]any
}

// NewData wraps a decoded JSON value.
func NewData(raw any) *Data {
	d := &Data{raw: raw, fields: map[string]any{}}
	if obj, ok := raw.(map[string]any); ok {
		d.Populate(obj)
	}

	return d
}

// Populate assigns every key of obj, wrapping nested objects.
func (d *Data) Populate(obj map[string]any) *Data {
	if d.fields == nil {
		d.fields = make(map[string]any, len(obj))
	}

	for key, value := range obj {
		if nested, ok := value.(map[string]any); ok {
			d.fields[key] = NewData(nested)

			continue
		}

		d.fields[key] = value
	}

	return d
}

// Get returns a field and whether it exists.
func (d *Data) Get(key string) (any, bool) {
	v, ok := d.fields[key]

	return v, ok
}

// Has reports whether a field exists.
func (d *Data) Has(key string) bool {
	_, ok := d.fields[key]

	return ok
}

// Keys returns the field names in sorted order.
func (d *Data) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for key := range d.fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Raw returns the value as decoded.
func (d *Data) Raw() any {
	return d.raw
}
