package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/hbnb/pkg/core"
)

// TimeLayout is the fixed format of serialized timestamps (YYYY-MM-DDThh:mm:ss.ffffff).
const TimeLayout = "2006-01-02T15:04:05.000000"

// Record is implemented by every persistable type.
// The set of implementations is closed: see Types.
type Record interface {
	// TypeName is the concrete variant name, used as the type tag and key prefix.
	TypeName() string
	// Base exposes the identity and timestamps shared by every variant.
	Base() *BaseModel
	fields() []field
}

// Registrar is the storage side of a record's lifecycle.
// Fresh records register themselves through New; Save flushes every record.
type Registrar interface {
	New(r Record)
	Save() error
}

// BaseModel carries the identity and timestamps of a record.
// Extra holds attributes that have no typed field on the variant.
type BaseModel struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Extra     map[string]any
}

// NewBaseModel creates a fresh BaseModel and registers it with s.
func NewBaseModel(s Registrar) *BaseModel {
	b := &BaseModel{}
	b.fresh()
	register(s, b)
	return b
}

func (b *BaseModel) TypeName() string { return "BaseModel" }
func (b *BaseModel) Base() *BaseModel { return b }
func (b *BaseModel) fields() []field  { return nil }
func (b *BaseModel) String() string   { return Format(b) }

// Save refreshes UpdatedAt and flushes the whole store, not only this record.
func (b *BaseModel) Save(s Registrar) error {
	b.UpdatedAt = now()
	return s.Save()
}

func (b *BaseModel) fresh() {
	b.ID = uuid.NewString()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
}

// now is truncated to the serialized precision so a round trip is lossless.
func now() time.Time {
	return time.Now().Truncate(time.Microsecond)
}

func register(s Registrar, r Record) {
	if s != nil {
		s.New(r)
	}
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp in local time.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", core.ErrMalformedTimestamp, s)
	}
	return t, nil
}

// ToDict converts r into a plain map suitable for serialization.
// The map holds every attribute, the type tag and both timestamps as strings.
// It is a deep copy: mutating it never affects r.
func ToDict(r Record) map[string]any {
	b := r.Base()
	fs := r.fields()
	d := make(map[string]any, len(b.Extra)+len(fs)+4)
	for k, v := range b.Extra {
		d[k] = cloneValue(v)
	}
	for _, f := range fs {
		d[f.name] = f.get()
	}
	if b.ID != "" {
		d["id"] = b.ID
	}
	d[core.TypeTag] = r.TypeName()
	d["created_at"] = FormatTime(b.CreatedAt)
	d["updated_at"] = FormatTime(b.UpdatedAt)
	return d
}

// Attributes returns the in-memory attribute set of r.
// Unlike ToDict, timestamps stay time.Time and no type tag is added.
func Attributes(r Record) map[string]any {
	b := r.Base()
	attrs := make(map[string]any, len(b.Extra)+len(r.fields())+3)
	for k, v := range b.Extra {
		attrs[k] = v
	}
	for _, f := range r.fields() {
		attrs[f.name] = f.get()
	}
	if b.ID != "" {
		attrs["id"] = b.ID
	}
	attrs["created_at"] = b.CreatedAt
	attrs["updated_at"] = b.UpdatedAt
	return attrs
}

// Format renders r as "[<TypeName>] (<id>) <attributes>".
func Format(r Record) string {
	return fmt.Sprintf("[%s] (%s) %v", r.TypeName(), r.Base().ID, Attributes(r))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = cloneValue(val)
		}
		return l
	default:
		return v
	}
}
