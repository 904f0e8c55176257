package form

import (
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// Entry is one persisted profile value
type Entry struct {
	Key   kernel.FieldID `json:"key"`
	Label string         `json:"label"`
	Value string         `json:"value"`
}

// Serialize converts state into the persisted profile_data, walking fields
// the same way IsSubmittable does. Empty values are dropped except for
// photo_profile, which is always recorded so a missing photo is explicit.
// It does not validate.
func Serialize(fields []profilefield.FieldConfig, state State, photo CapturedPhoto) []Entry {
	ordered, _ := profilefield.Ordered(fields)
	entries := make([]Entry, 0, len(ordered))
	for _, f := range ordered {
		var value string
		if f.IsPhoto() {
			if photo.Present {
				value = photo.Token
			}
		} else {
			value = state.Get(f.ID)
		}

		if value == "" && !f.IsPhoto() {
			continue
		}

		entries = append(entries, Entry{
			Key:   f.ID,
			Label: f.Label,
			Value: value,
		})
	}
	return entries
}

// Lookup returns the value stored under key
func Lookup(entries []Entry, key kernel.FieldID) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}
