package models

type Amenity struct {
	BaseModel
	Name string
}

// NewAmenity creates a fresh Amenity and registers it with s.
func NewAmenity(s Registrar) *Amenity {
	a := &Amenity{}
	a.fresh()
	register(s, a)
	return a
}

func (a *Amenity) TypeName() string { return "Amenity" }
func (a *Amenity) String() string   { return Format(a) }

func (a *Amenity) fields() []field {
	return []field{{"name", &a.Name}}
}
