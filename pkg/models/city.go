package models

// City belongs to a State through StateID. The link is not enforced.
type City struct {
	BaseModel
	StateID string
	Name    string
}

// NewCity creates a fresh City and registers it with s.
func NewCity(s Registrar) *City {
	c := &City{}
	c.fresh()
	register(s, c)
	return c
}

func (c *City) TypeName() string { return "City" }
func (c *City) String() string   { return Format(c) }

func (c *City) fields() []field {
	return []field{
		{"state_id", &c.StateID},
		{"name", &c.Name},
	}
}
