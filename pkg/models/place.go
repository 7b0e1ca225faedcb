package models

// Place is a rentable accommodation in a City, owned by a User.
type Place struct {
	BaseModel
	CityID          string
	UserID          string
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        float64
	Longitude       float64
}

// NewPlace creates a fresh Place and registers it with s.
func NewPlace(s Registrar) *Place {
	p := &Place{}
	p.fresh()
	register(s, p)
	return p
}

func (p *Place) TypeName() string { return "Place" }
func (p *Place) String() string   { return Format(p) }

func (p *Place) fields() []field {
	return []field{
		{"city_id", &p.CityID},
		{"user_id", &p.UserID},
		{"name", &p.Name},
		{"description", &p.Description},
		{"number_rooms", &p.NumberRooms},
		{"number_bathrooms", &p.NumberBathrooms},
		{"max_guest", &p.MaxGuest},
		{"price_by_night", &p.PriceByNight},
		{"latitude", &p.Latitude},
		{"longitude", &p.Longitude},
	}
}
