package form

import (
	"maps"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// KnownAttributes are profile values already known for the signed-in user
type KnownAttributes struct {
	FullName kernel.FullName
	Email    kernel.Email
}

// State holds the current value of every field in the active configuration.
// It is immutable: Set returns a new State.
type State struct {
	values map[kernel.FieldID]string
}

// Initialize creates a state with one entry per field, pre-filling
// full_name and email from known attributes when present.
func Initialize(fields []profilefield.FieldConfig, known KnownAttributes) State {
	values := make(map[kernel.FieldID]string, len(fields))
	for _, f := range fields {
		switch {
		case f.ID == profilefield.FieldFullName && known.FullName != "":
			values[f.ID] = known.FullName.String()
		case f.ID == profilefield.FieldEmail && known.Email != "":
			values[f.ID] = known.Email.String()
		default:
			values[f.ID] = ""
		}
	}
	return State{values: values}
}

// Set returns a copy of s with id set to value. Ids outside the active
// configuration leave the state unchanged.
func (s State) Set(id kernel.FieldID, value string) State {
	if _, ok := s.values[id]; !ok {
		logx.Warnf("form: ignoring value for unknown field %q", id)
		return s
	}
	values := maps.Clone(s.values)
	values[id] = value
	return State{values: values}
}

// Apply sets every entry of updates in turn
func (s State) Apply(updates map[kernel.FieldID]string) State {
	for id, v := range updates {
		s = s.Set(id, v)
	}
	return s
}

// Get returns the value for id, empty when absent
func (s State) Get(id kernel.FieldID) string {
	return s.values[id]
}

// Has reports whether id belongs to the state
func (s State) Has(id kernel.FieldID) bool {
	_, ok := s.values[id]
	return ok
}

// Values returns a copy of the underlying map
func (s State) Values() map[kernel.FieldID]string {
	return maps.Clone(s.values)
}

func (s State) Len() int { return len(s.values) }
