package form

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// Verdict is the outcome of IsSubmittable
type Verdict struct {
	OK      bool           `json:"ok"`
	Field   kernel.FieldID `json:"field,omitempty"`
	Label   string         `json:"label,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Err returns nil for a passing verdict and a ValidationError otherwise
func (v Verdict) Err() error {
	if v.OK {
		return nil
	}
	return ErrValidation(v)
}

// IsSubmittable walks profilefield.Ordered(fields) and stops at the first
// mandatory field that is unset. The photo field is satisfied only by a
// captured photo, every other field by a non-blank value.
func IsSubmittable(fields []profilefield.FieldConfig, state State, photoPresent bool) Verdict {
	ordered, _ := profilefield.Ordered(fields)
	for _, f := range ordered {
		if !f.Mandatory {
			continue
		}

		if f.IsPhoto() {
			if !photoPresent {
				return Verdict{
					Field:   f.ID,
					Label:   f.Label,
					Message: fmt.Sprintf(`Field "%s" is required. Please take a picture.`, f.Label),
				}
			}
			continue
		}

		if strings.TrimSpace(state.Get(f.ID)) == "" {
			return Verdict{
				Field:   f.ID,
				Label:   f.Label,
				Message: fmt.Sprintf(`Field "%s" is required.`, f.Label),
			}
		}
	}

	return Verdict{OK: true}
}
