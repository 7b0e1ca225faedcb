// Package core holds the vocabulary shared by the records, the storage engine
// and the console: sentinel errors, composite keys and storage events.
package core

import (
	"fmt"
	"strings"
)

// TypeTag is the serialized field naming a record's concrete type.
const TypeTag = "__class__"

// Key builds the composite key "<TypeName>.<id>" under which a record is stored.
func Key(typeName, id string) string {
	return typeName + "." + id
}

// SplitKey returns the type name and id encoded in a composite key.
// The id is everything after the first dot.
func SplitKey(key string) (typeName, id string) {
	typeName, id, _ = strings.Cut(key, ".")
	return typeName, id
}

// EventType represents the type of change observed on the backing file.
type EventType string

const (
	EventReload EventType = "RELOAD"
	EventRemove EventType = "REMOVE"
	EventError  EventType = "ERROR"
)

// Event represents a change in the backing file picked up by a watcher.
type Event struct {
	Type      EventType
	Path      string
	Records   int
	Err       error
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s (%d records)", e.Type, e.Path, e.Records)
}
