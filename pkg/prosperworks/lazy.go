package prosperworks

import (
	"context"
	"fmt"
)

// Related returns the value of a lazy relation, resolving it on first access.
// A successful resolution is stored on the entity and never recomputed, even
// if the backing id field changes later. Failed resolutions are not stored.
func (e *Entity) Related(ctx context.Context, name string) (any, error) {
	cell, ok := e.lazy[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownRelation, e.schema.Name, name)
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.resolved {
		return cell.value, nil
	}

	def, _ := e.schema.lazyField(name)

	value, err := def.Resolve(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("resolving %s.%s: %w", e.schema.Name, name, err)
	}

	cell.resolved = true
	cell.value = value

	return value, nil
}

// IsResolved reports whether a lazy relation has been computed.
func (e *Entity) IsResolved(name string) bool {
	cell, ok := e.lazy[name]
	if !ok {
		return false
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	return cell.resolved
}

// ByID resolves a relation by fetching target with the id stored in idField.
// An unset id resolves to nil.
func ByID(target *Schema, idField string) ResolveFunc {
	return func(ctx context.Context, e *Entity) (any, error) {
		id := e.Get(idField)
		if formatID(id) == "" {
			return nil, nil
		}

		return Construct(ctx, e.session, target, id)
	}
}

// FromReference resolves a relation against a cached reference list, matching
// the id stored in idField. An unset or unknown id resolves to nil.
func FromReference(target *Schema, cacheKey, idField string) ResolveFunc {
	return func(ctx context.Context, e *Entity) (any, error) {
		id := formatID(e.Get(idField))
		if id == "" {
			return nil, nil
		}

		entities, err := CachedList(ctx, e.session, target, cacheKey)
		if err != nil {
			return nil, err
		}

		for _, candidate := range entities {
			if candidate.IDString() == id {
				return candidate, nil
			}
		}

		return nil, nil
	}
}

// related resolves a relation and wraps the resulting entity.
func related[T any](ctx context.Context, e *Entity, name string, wrap func(*Entity) T) (T, error) {
	var zero T

	value, err := e.Related(ctx, name)
	if err != nil {
		return zero, err
	}

	entity, ok := value.(*Entity)
	if !ok || entity == nil {
		return zero, nil
	}

	return wrap(entity), nil
}
