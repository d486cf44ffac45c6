package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// resource binds a schema to a session and to the typed wrapper of its
// entities. Capability structs share one resource.
type resource[T prosperworks.Resource] struct {
	session prosperworks.Session
	schema  *prosperworks.Schema
	wrap    func(*prosperworks.Entity) T
}

func newResource[T prosperworks.Resource](
	session prosperworks.Session,
	schema *prosperworks.Schema,
	wrap func(*prosperworks.Entity) T,
) *resource[T] {
	return &resource[T]{session: session, schema: schema, wrap: wrap}
}

func (r *resource[T]) wrapAll(entities []*prosperworks.Entity) []T {
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		out = append(out, r.wrap(e))
	}

	return out
}

// getter fetches one record by id.
type getter[T prosperworks.Resource] struct {
	r *resource[T]
}

// Get implements prosperworks.Getter.
func (c getter[T]) Get(ctx context.Context, id any) (T, error) {
	var zero T

	e, err := prosperworks.Construct(ctx, c.r.session, c.r.schema, id)
	if err != nil {
		return zero, fmt.Errorf("getting %s: %w", c.r.schema.Name, err)
	}

	return c.r.wrap(e), nil
}

// searcher runs searches. Listing a searchable resource is an unfiltered
// search.
type searcher[T prosperworks.Resource] struct {
	r *resource[T]
}

// Search implements prosperworks.Searcher.
func (c searcher[T]) Search(ctx context.Context, query map[string]any) ([]T, error) {
	entities, err := prosperworks.Search(ctx, c.r.session, c.r.schema, query)
	if err != nil {
		return nil, err
	}

	return c.r.wrapAll(entities), nil
}

// List implements prosperworks.Lister.
func (c searcher[T]) List(ctx context.Context) ([]T, error) {
	entities, err := prosperworks.List(ctx, c.r.session, c.r.schema)
	if err != nil {
		return nil, err
	}

	return c.r.wrapAll(entities), nil
}

// cachedLister lists reference data through the session's reference cache.
type cachedLister[T prosperworks.Resource] struct {
	r        *resource[T]
	cacheKey string
}

// List implements prosperworks.Lister.
func (c cachedLister[T]) List(ctx context.Context) ([]T, error) {
	entities, err := prosperworks.CachedList(ctx, c.r.session, c.r.schema, c.cacheKey)
	if err != nil {
		return nil, err
	}

	return c.r.wrapAll(entities), nil
}

// creator creates records.
type creator[T prosperworks.Resource] struct {
	r *resource[T]
}

// Create implements prosperworks.Creator.
func (c creator[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T

	e, err := prosperworks.Create(ctx, c.r.session, c.r.schema, fields)
	if err != nil {
		return zero, err
	}

	return c.r.wrap(e), nil
}

// updater writes records back.
type updater[T prosperworks.Resource] struct {
	r *resource[T]
}

// Update implements prosperworks.Updater.
func (c updater[T]) Update(ctx context.Context, res T, fields ...string) error {
	_, err := prosperworks.Update(ctx, res.Record(), fields...)

	return err
}

// deleter removes records.
type deleter[T prosperworks.Resource] struct {
	r *resource[T]
}

// Delete implements prosperworks.Deleter.
func (c deleter[T]) Delete(ctx context.Context, res T) (*prosperworks.Data, error) {
	return prosperworks.Delete(ctx, res.Record())
}

// crud composes every capability of a writable, searchable resource.
type crud[T prosperworks.Resource] struct {
	getter[T]
	searcher[T]
	creator[T]
	updater[T]
	deleter[T]
}

func newCRUD[T prosperworks.Resource](
	session prosperworks.Session,
	schema *prosperworks.Schema,
	wrap func(*prosperworks.Entity) T,
) crud[T] {
	r := newResource(session, schema, wrap)

	return crud[T]{
		getter:   getter[T]{r: r},
		searcher: searcher[T]{r: r},
		creator:  creator[T]{r: r},
		updater:  updater[T]{r: r},
		deleter:  deleter[T]{r: r},
	}
}
