package models

type State struct {
	BaseModel
	Name string
}

// NewState creates a fresh State and registers it with s.
func NewState(s Registrar) *State {
	st := &State{}
	st.fresh()
	register(s, st)
	return st
}

func (st *State) TypeName() string { return "State" }
func (st *State) String() string   { return Format(st) }

func (st *State) fields() []field {
	return []field{{"name", &st.Name}}
}
