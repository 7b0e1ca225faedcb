package models

// Review is a User's text about a Place.
type Review struct {
	BaseModel
	PlaceID string
	UserID  string
	Text    string
}

// NewReview creates a fresh Review and registers it with s.
func NewReview(s Registrar) *Review {
	r := &Review{}
	r.fresh()
	register(s, r)
	return r
}

func (r *Review) TypeName() string { return "Review" }
func (r *Review) String() string   { return Format(r) }

func (r *Review) fields() []field {
	return []field{
		{"place_id", &r.PlaceID},
		{"user_id", &r.UserID},
		{"text", &r.Text},
	}
}
