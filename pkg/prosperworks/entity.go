package prosperworks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Entity is the in-memory representation of one remote resource instance.
//
// Values live in a map keyed by field name. Nested and list fields always hold
// a container freshly allocated for this instance, scalar fields are absent
// until populated.
type Entity struct {
	schema  *Schema
	values  map[string]any
	lazy    map[string]*lazyCell
	session Session
}

type lazyCell struct {
	mu       sync.Mutex
	resolved bool
	value    any
}

// NewEntity creates an empty, unsaved entity for schema.
func NewEntity(schema *Schema) *Entity {
	e := &Entity{
		schema: schema,
		values: newValues(schema),
		lazy:   make(map[string]*lazyCell, len(schema.Lazy)),
	}

	for _, l := range schema.Lazy {
		e.lazy[l.Name] = &lazyCell{}
	}

	return e
}

// Bind attaches the session used for lazy relations and later requests.
func (e *Entity) Bind(s Session) *Entity {
	e.session = s

	return e
}

func newValues(schema *Schema) map[string]any {
	values := make(map[string]any, len(schema.Fields))

	for _, f := range schema.Fields {
		switch f.Kind {
		case KindNested:
			values[f.Name] = NewEntity(f.Schema)
		case KindObjectList:
			values[f.Name] = NewObjectList(f.Schema)
		case KindSimpleList:
			values[f.Name] = NewSimpleList()
		case KindScalar:
		}
	}

	return values
}

// Record returns the entity itself. Typed resources embed *Entity and inherit
// this method, which lets generic code reach the underlying entity.
func (e *Entity) Record() *Entity {
	return e
}

// Schema returns the schema the entity was built from.
func (e *Entity) Schema() *Schema {
	return e.schema
}

// Session returns the bound session, or nil.
func (e *Entity) Session() Session {
	return e.session
}

// ID returns the raw id value, nil for a new entity.
func (e *Entity) ID() any {
	return e.values[e.schema.Identity()]
}

// IDString formats the id for use in a URL path, "" when unset.
func (e *Entity) IDString() string {
	return formatID(e.ID())
}

// IsNew reports whether the entity has no id yet.
func (e *Entity) IsNew() bool {
	return e.IDString() == ""
}

// Path is the id-derived resource path, or the bare endpoint for an entity
// without id (singletons such as the account).
func (e *Entity) Path() string {
	id := e.IDString()
	if id == "" {
		return e.schema.Endpoint
	}

	return e.schema.Endpoint + "/" + id
}

// Get returns the current value of a field: the raw scalar, *Entity,
// *ObjectList or *SimpleList. Unset scalars return nil.
func (e *Entity) Get(name string) any {
	return e.values[name]
}

// IsSet reports whether the field holds a non-nil value. Containers count as
// set only when they hold data.
func (e *Entity) IsSet(name string) bool {
	switch v := e.values[name].(type) {
	case nil:
		return false
	case *Entity:
		return !v.empty()
	case *ObjectList:
		return v.Len() > 0
	case *SimpleList:
		return v.Len() > 0
	default:
		return true
	}
}

// Set assigns a value directly, bypassing population rules.
func (e *Entity) Set(name string, value any) *Entity {
	e.values[name] = value

	return e
}

// Text returns a field as text, "" when unset.
func (e *Entity) Text(name string) string {
	switch v := e.values[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns a numeric field as an integer.
func (e *Entity) Int64(name string) (int64, bool) {
	switch v := e.values[name].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return n, true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Float64 returns a numeric field as a float.
func (e *Entity) Float64(name string) (float64, bool) {
	switch v := e.values[name].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return f, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bool returns a boolean field.
func (e *Entity) Bool(name string) (bool, bool) {
	b, ok := e.values[name].(bool)

	return b, ok
}

// Nested returns a nested entity field, nil if name is not a nested field.
func (e *Entity) Nested(name string) *Entity {
	n, _ := e.values[name].(*Entity)

	return n
}

// Objects returns an object list field, nil if name is not one.
func (e *Entity) Objects(name string) *ObjectList {
	l, _ := e.values[name].(*ObjectList)

	return l
}

// Values returns a simple list field, nil if name is not one.
func (e *Entity) Values(name string) *SimpleList {
	l, _ := e.values[name].(*SimpleList)

	return l
}

func (e *Entity) empty() bool {
	for name := range e.values {
		if e.IsSet(name) {
			return false
		}
	}

	return true
}

// GoString renders the populated fields, e.g. <Company: id=1, name=Acme>.
func (e *Entity) GoString() string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		if e.IsSet(name) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		var rendered string

		switch v := e.values[name].(type) {
		case *Entity:
			rendered = v.GoString()
		case *ObjectList:
			rendered = fmt.Sprintf("[%d items]", v.Len())
		case *SimpleList:
			rendered = fmt.Sprint(v.Items())
		default:
			rendered = e.Text(name)
		}

		parts = append(parts, name+"="+rendered)
	}

	return fmt.Sprintf("<%s: %s>", e.schema.Name, strings.Join(parts, ", "))
}

// clone deep-copies the containers so a failed population can be discarded.
// Decoded scalar values are treated as immutable and shared.
func (e *Entity) clone() *Entity {
	c := &Entity{
		schema:  e.schema,
		values:  make(map[string]any, len(e.values)),
		lazy:    e.lazy,
		session: e.session,
	}

	for name, value := range e.values {
		switch v := value.(type) {
		case *Entity:
			c.values[name] = v.clone()
		case *ObjectList:
			c.values[name] = v.clone()
		case *SimpleList:
			c.values[name] = v.clone()
		default:
			c.values[name] = v
		}
	}

	return c
}

// ObjectList is an ordered list of flat sub-entities owned by one entity.
type ObjectList struct {
	schema *Schema
	items  []*Entity
}

// NewObjectList creates an empty list of schema elements.
func NewObjectList(schema *Schema) *ObjectList {
	return &ObjectList{schema: schema}
}

// Items returns the elements in order.
func (l *ObjectList) Items() []*Entity {
	return l.items
}

// Len returns the number of elements.
func (l *ObjectList) Len() int {
	return len(l.items)
}

// Append adds an element built from fields.
func (l *ObjectList) Append(fields map[string]any) *Entity {
	item := FromSimpleDict(l.schema, fields)
	l.items = append(l.items, item)

	return item
}

// Serialize returns the elements as JSON-ready objects.
func (l *ObjectList) Serialize() []map[string]any {
	out := make([]map[string]any, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, item.Serialize())
	}

	return out
}

func (l *ObjectList) clone() *ObjectList {
	c := &ObjectList{schema: l.schema, items: make([]*Entity, 0, len(l.items))}
	for _, item := range l.items {
		c.items = append(c.items, item.clone())
	}

	return c
}

// SimpleList is an ordered list of primitive values owned by one entity.
type SimpleList struct {
	items []any
}

// NewSimpleList creates an empty list.
func NewSimpleList() *SimpleList {
	return &SimpleList{}
}

// Items returns the values in order.
func (l *SimpleList) Items() []any {
	return l.items
}

// Len returns the number of values.
func (l *SimpleList) Len() int {
	return len(l.items)
}

// Strings returns the values formatted as text.
func (l *SimpleList) Strings() []string {
	out := make([]string, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, formatID(item))
	}

	return out
}

// Append adds values at the end.
func (l *SimpleList) Append(values ...any) {
	l.items = append(l.items, values...)
}

// Serialize returns a copy of the values.
func (l *SimpleList) Serialize() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)

	return out
}

func (l *SimpleList) clone() *SimpleList {
	return &SimpleList{items: l.Serialize()}
}

func formatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}
