package models

import (
	"fmt"
	"sort"

	"github.com/aretw0/hbnb/pkg/core"
)

// Factory builds an empty record of one concrete type.
type Factory func() Record

// types is the closed dispatch table from type tag to factory.
// Adding a record type means adding it here.
var types = map[string]Factory{
	"BaseModel": func() Record { return &BaseModel{} },
	"User":      func() Record { return &User{} },
	"City":      func() Record { return &City{} },
	"Place":     func() Record { return &Place{} },
	"Review":    func() Record { return &Review{} },
	"State":     func() Record { return &State{} },
	"Amenity":   func() Record { return &Amenity{} },
}

// Types returns the known type names, sorted.
func Types() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether typeName is in the dispatch table.
func Known(typeName string) bool {
	_, ok := types[typeName]
	return ok
}

func lookup(typeName string) (Factory, error) {
	f, ok := types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownRecordType, typeName)
	}
	return f, nil
}

// Create performs a fresh construction of typeName: new id, both timestamps
// set to now, registered with s.
func Create(typeName string, s Registrar) (Record, error) {
	f, err := lookup(typeName)
	if err != nil {
		return nil, err
	}
	r := f()
	r.Base().fresh()
	register(s, r)
	return r, nil
}

// Rebuild reconstructs a record of typeName from its serialized attributes.
// The record is not registered; the caller owns its key.
func Rebuild(typeName string, attrs map[string]any) (Record, error) {
	f, err := lookup(typeName)
	if err != nil {
		return nil, err
	}
	r := f()
	if err := load(r, attrs); err != nil {
		return nil, fmt.Errorf("rebuild %s: %w", typeName, err)
	}
	return r, nil
}
