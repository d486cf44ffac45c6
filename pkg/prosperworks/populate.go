package prosperworks

import (
	"context"
	"fmt"
	"net/http"
	"sort"
)

// Merge maps a decoded JSON object onto the entity.
//
// Unset scalars take the raw value, scalars that are already set keep theirs.
// Nested objects are merged recursively, object lists are rebuilt from their
// elements and simple lists are replaced. Keys the schema does not declare are
// ignored. When a value has the wrong JSON shape the entity is left untouched.
func (e *Entity) Merge(data map[string]any) (*Entity, error) {
	return e, e.apply(data, false)
}

// Refresh is Merge with scalars overwritten, used to reflect server-computed
// values after a write.
func (e *Entity) Refresh(data map[string]any) (*Entity, error) {
	return e, e.apply(data, true)
}

func (e *Entity) apply(data map[string]any, overwrite bool) error {
	staged := e.clone()

	err := staged.populate(data, overwrite)
	if err != nil {
		return err
	}

	e.values = staged.values

	return nil
}

func (e *Entity) populate(data map[string]any, overwrite bool) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		field, ok := e.schema.Field(key)
		if !ok {
			continue
		}

		err := e.populateField(field, data[key], overwrite)
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *Entity) populateField(field Field, raw any, overwrite bool) error {
	switch field.Kind {
	case KindScalar:
		if overwrite || e.values[field.Name] == nil {
			e.values[field.Name] = raw
		}

	case KindNested:
		child, ok := e.values[field.Name].(*Entity)
		if !ok || (overwrite && raw == nil) {
			child = NewEntity(field.Schema)
			e.values[field.Name] = child
		}

		if raw == nil {
			return nil
		}

		obj, ok := raw.(map[string]any)
		if !ok {
			return e.shapeError(field, raw)
		}

		child.session = e.session

		return child.populate(obj, overwrite)

	case KindObjectList:
		items, err := e.array(field, raw)
		if err != nil {
			return err
		}

		list := NewObjectList(field.Schema)

		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return e.shapeError(Field{Name: field.Name, Kind: KindNested}, item)
			}

			list.Append(obj)
		}

		e.values[field.Name] = list

	case KindSimpleList:
		items, err := e.array(field, raw)
		if err != nil {
			return err
		}

		list := NewSimpleList()
		list.Append(items...)
		e.values[field.Name] = list
	}

	return nil
}

func (e *Entity) array(field Field, raw any) ([]any, error) {
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, e.shapeError(field, raw)
	}

	return items, nil
}

func (e *Entity) shapeError(field Field, raw any) error {
	return &PopulateError{
		Resource: e.schema.Name,
		Field:    field.Name,
		Expected: field.Kind.String(),
		Got:      raw,
	}
}

// FromSimpleDict builds an entity by assigning every key of dict directly,
// without validation or recursion. It is meant for flat objects such as
// addresses and phone numbers.
func FromSimpleDict(schema *Schema, dict map[string]any) *Entity {
	e := NewEntity(schema)
	for key, value := range dict {
		e.values[key] = value
	}

	return e
}

// Populate merges data into e. With nil data the entity is fetched from its
// id-derived path through its bound session first.
func Populate(ctx context.Context, e *Entity, data map[string]any) (*Entity, error) {
	if data == nil {
		if e.session == nil {
			return nil, fmt.Errorf("populating %s: %w", e.schema.Name, ErrNotConfigured)
		}

		raw, err := e.session.Do(ctx, http.MethodGet, e.Path(), nil)
		if err != nil {
			return nil, fmt.Errorf("getting %s: %w", e.Path(), err)
		}

		data, err = asObject(raw)
		if err != nil {
			return nil, fmt.Errorf("getting %s: %w", e.Path(), err)
		}
	}

	return e.Merge(data)
}

// PopulateList builds one entity per element of listData, preserving order.
// With nil listData the resource's base path is fetched first.
func PopulateList(ctx context.Context, s Session, schema *Schema, listData []any) ([]*Entity, error) {
	if listData == nil {
		if s == nil {
			return nil, fmt.Errorf("listing %s: %w", schema.Endpoint, ErrNotConfigured)
		}

		raw, err := s.Do(ctx, http.MethodGet, schema.Endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", schema.Endpoint, err)
		}

		listData, err = asArray(raw)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", schema.Endpoint, err)
		}
	}

	entities := make([]*Entity, 0, len(listData))

	for i, item := range listData {
		obj, err := asObject(item)
		if err != nil {
			return nil, fmt.Errorf("%s element %d: %w", schema.Endpoint, i, err)
		}

		e, err := NewEntity(schema).Bind(s).Merge(obj)
		if err != nil {
			return nil, err
		}

		entities = append(entities, e)
	}

	return entities, nil
}

func asObject(raw any) (map[string]any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrUnexpectedPayload, raw)
	}

	return obj, nil
}

func asArray(raw any) ([]any, error) {
	items, ok := raw.([]any)
	if !ok || items == nil {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrUnexpectedPayload, raw)
	}

	return items, nil
}
