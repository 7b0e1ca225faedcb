package models

// User is a person holding an account.
type User struct {
	BaseModel
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// NewUser creates a fresh User and registers it with s.
func NewUser(s Registrar) *User {
	u := &User{}
	u.fresh()
	register(s, u)
	return u
}

func (u *User) TypeName() string { return "User" }
func (u *User) String() string   { return Format(u) }

func (u *User) fields() []field {
	return []field{
		{"email", &u.Email},
		{"password", &u.Password},
		{"first_name", &u.FirstName},
		{"last_name", &u.LastName},
	}
}
