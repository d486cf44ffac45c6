package prosperworks

import (
	"context"
	"fmt"
	"net/http"
)

// Construct creates an entity bound to s. When id is non-empty the entity is
// fetched from <endpoint>/<id> and populated before it is returned.
func Construct(ctx context.Context, s Session, schema *Schema, id any) (*Entity, error) {
	e := NewEntity(schema).Bind(s)
	if formatID(id) == "" {
		return e, nil
	}

	e.values[schema.Identity()] = id

	_, err := Populate(ctx, e, nil)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Create validates fields against the create allow-list, posts them to the
// resource's base path and returns the entity built from the response.
// Validation happens before any request is made.
func Create(ctx context.Context, s Session, schema *Schema, fields map[string]any) (*Entity, error) {
	err := ValidateFields(fields, schema.CreateFields, "create")
	if err != nil {
		return nil, err
	}

	if s == nil {
		return nil, fmt.Errorf("creating %s: %w", schema.Name, ErrNotConfigured)
	}

	if fields == nil {
		fields = map[string]any{}
	}

	raw, err := s.Do(ctx, http.MethodPost, schema.Endpoint, fields)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", schema.Name, err)
	}

	data, err := asObject(raw)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", schema.Name, err)
	}

	return NewEntity(schema).Bind(s).Merge(data)
}

// Update sends the serialized entity, optionally restricted to fields, to its
// id-derived path and refreshes the entity in place from the response.
func Update(ctx context.Context, e *Entity, fields ...string) (*Entity, error) {
	if e.IsNew() {
		return nil, fmt.Errorf("updating %s: %w", e.schema.Name, ErrMissingID)
	}

	if e.session == nil {
		return nil, fmt.Errorf("updating %s: %w", e.schema.Name, ErrNotConfigured)
	}

	raw, err := e.session.Do(ctx, http.MethodPut, e.Path(), e.Serialize(fields...))
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", e.Path(), err)
	}

	data, err := asObject(raw)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", e.Path(), err)
	}

	return e.Refresh(data)
}

// Delete removes the entity remotely and returns whatever the server answered.
func Delete(ctx context.Context, e *Entity) (*Data, error) {
	if e.IsNew() {
		return nil, fmt.Errorf("deleting %s: %w", e.schema.Name, ErrMissingID)
	}

	if e.session == nil {
		return nil, fmt.Errorf("deleting %s: %w", e.schema.Name, ErrNotConfigured)
	}

	raw, err := e.session.Do(ctx, http.MethodDelete, e.Path(), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", e.Path(), err)
	}

	return NewData(raw), nil
}

// List returns every entity of the resource. Searchable resources list through
// an unfiltered search so both share the server's paging and sorting.
func List(ctx context.Context, s Session, schema *Schema) ([]*Entity, error) {
	if schema.Searchable() {
		return Search(ctx, s, schema, nil)
	}

	return PopulateList(ctx, s, schema, nil)
}

// Search validates query against the search allow-list and posts it to
// <endpoint>/search.
func Search(ctx context.Context, s Session, schema *Schema, query map[string]any) ([]*Entity, error) {
	if !schema.Searchable() {
		return nil, fmt.Errorf("searching %s: %w", schema.Name, ErrNotSearchable)
	}

	err := ValidateFields(query, schema.SearchFields, "search")
	if err != nil {
		return nil, err
	}

	if s == nil {
		return nil, fmt.Errorf("searching %s: %w", schema.Name, ErrNotConfigured)
	}

	if query == nil {
		query = map[string]any{}
	}

	path := schema.Endpoint + "/search"

	raw, err := s.Do(ctx, http.MethodPost, path, query)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", schema.Endpoint, err)
	}

	items, err := asArray(raw)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", schema.Endpoint, err)
	}

	return PopulateList(ctx, s, schema, items)
}

// CachedList lists a reference resource through the session's cache. The raw
// payload is cached, so every call builds fresh entities.
func CachedList(ctx context.Context, s Session, schema *Schema, cacheKey string) ([]*Entity, error) {
	if s == nil {
		return nil, fmt.Errorf("listing %s: %w", schema.Endpoint, ErrNotConfigured)
	}

	raw, err := s.ReferenceCache().GetOrSet(ctx, cacheKey, func(ctx context.Context) (any, error) {
		return s.Do(ctx, http.MethodGet, schema.Endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", schema.Endpoint, err)
	}

	items, err := asArray(raw)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", schema.Endpoint, err)
	}

	return PopulateList(ctx, s, schema, items)
}
