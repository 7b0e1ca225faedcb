package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/aretw0/hbnb/pkg/core"
)

// field binds an attribute name to a typed struct field.
// ptr is one of *string, *int or *float64.
type field struct {
	name string
	ptr  any
}

func (f field) get() any {
	switch p := f.ptr.(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *float64:
		return *p
	}
	return nil
}

func (f field) set(v any) error {
	switch p := f.ptr.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return fieldTypeError(f.name, "string", v)
		}
		*p = s
	case *int:
		n, ok := toInt(v)
		if !ok {
			return fieldTypeError(f.name, "int", v)
		}
		*p = n
	case *float64:
		x, ok := toFloat(v)
		if !ok {
			return fieldTypeError(f.name, "float", v)
		}
		*p = x
	}
	return nil
}

func fieldTypeError(name, want string, got any) error {
	return fmt.Errorf("%w: %s wants %s, got %T", core.ErrFieldType, name, want, got)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case int32:
		return int(n), true
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return toInt(i)
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

// floatToInt accepts whole numbers within the range of int.
// float64(math.MaxInt) rounds up to 2^63, hence the open upper bound.
func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Reserved reports whether name is managed by the record itself
// (id, timestamps or the type tag) and cannot be assigned.
func Reserved(name string) bool {
	switch name {
	case "id", "created_at", "updated_at", core.TypeTag:
		return true
	}
	return false
}

func lookupField(r Record, name string) (field, bool) {
	for _, f := range r.fields() {
		if f.name == name {
			return f, true
		}
	}
	return field{}, false
}

// Lookup returns the current value of the named attribute.
func Lookup(r Record, name string) (any, bool) {
	b := r.Base()
	switch name {
	case "id":
		return b.ID, b.ID != ""
	case "created_at":
		return b.CreatedAt, true
	case "updated_at":
		return b.UpdatedAt, true
	}
	if f, ok := lookupField(r, name); ok {
		return f.get(), true
	}
	v, ok := b.Extra[name]
	return v, ok
}

// Assign sets the named attribute. Typed fields enforce their type;
// any other name lands in Extra unchanged.
func Assign(r Record, name string, v any) error {
	if Reserved(name) {
		return fmt.Errorf("%w: %s is managed by the record", core.ErrFieldType, name)
	}
	if f, ok := lookupField(r, name); ok {
		return f.set(v)
	}
	b := r.Base()
	if b.Extra == nil {
		b.Extra = make(map[string]any)
	}
	b.Extra[name] = v
	return nil
}

// load fills r from a serialized attribute map. The type tag is dropped,
// both timestamps are required. r is not registered anywhere.
func load(r Record, attrs map[string]any) error {
	b := r.Base()

	created, err := stamp(attrs, "created_at")
	if err != nil {
		return err
	}
	updated, err := stamp(attrs, "updated_at")
	if err != nil {
		return err
	}
	b.CreatedAt = created
	b.UpdatedAt = updated

	for k, v := range attrs {
		switch k {
		case "created_at", "updated_at", core.TypeTag:
			continue
		case "id":
			id, ok := v.(string)
			if !ok {
				return fieldTypeError("id", "string", v)
			}
			b.ID = id
			continue
		}
		if f, ok := lookupField(r, k); ok {
			if err := f.set(v); err != nil {
				return err
			}
			continue
		}
		if b.Extra == nil {
			b.Extra = make(map[string]any)
		}
		b.Extra[k] = v
	}
	return nil
}

func stamp(attrs map[string]any, name string) (t time.Time, err error) {
	raw, ok := attrs[name]
	if !ok {
		return t, fmt.Errorf("%w: %s is missing", core.ErrMalformedTimestamp, name)
	}
	s, ok := raw.(string)
	if !ok {
		return t, fmt.Errorf("%w: %s is %T, not a string", core.ErrMalformedTimestamp, name, raw)
	}
	if t, err = ParseTime(s); err != nil {
		return t, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
