package profilefield

import (
	"sort"
	"strings"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/pkg/logx"
)

// Recognized profile field identifiers
const (
	FieldFullName     kernel.FieldID = "full_name"
	FieldEmail        kernel.FieldID = "email"
	FieldPhoneNumber  kernel.FieldID = "phone_number"
	FieldDateOfBirth  kernel.FieldID = "date_of_birth"
	FieldGender       kernel.FieldID = "gender"
	FieldDomicile     kernel.FieldID = "domicile"
	FieldLinkedInLink kernel.FieldID = "linkedin_link"
	FieldPhotoProfile kernel.FieldID = "photo_profile"
)

// FieldConfig describes one applicant profile attribute
type FieldConfig struct {
	ID         kernel.FieldID `db:"id" json:"id"`
	Label      string         `db:"label" json:"label"`
	Mandatory  bool           `db:"mandatory" json:"mandatory"`
	OrderIndex int            `db:"order_index" json:"order_index"`
}

// IsPhoto reports whether the field is filled by the capture flow
func (f FieldConfig) IsPhoto() bool {
	return f.ID == FieldPhotoProfile
}

// Validate checks an administrator supplied definition
func (f FieldConfig) Validate() error {
	if strings.TrimSpace(f.ID.String()) == "" {
		return ErrInvalidField().WithDetail("reason", "id is required")
	}
	if strings.TrimSpace(f.Label) == "" {
		return ErrInvalidField().WithDetail("id", f.ID.String()).WithDetail("reason", "label is required")
	}
	if f.OrderIndex < 0 {
		return ErrInvalidField().WithDetail("id", f.ID.String()).WithDetail("reason", "order_index must be >= 0")
	}
	return nil
}

// ============================================================================
// Requirements
// ============================================================================

// Requirement is the per-job setting of a field
type Requirement string

const (
	RequirementMandatory Requirement = "mandatory"
	RequirementOptional  Requirement = "optional"
	RequirementOff       Requirement = "off"
)

func (r Requirement) IsValid() bool {
	switch r {
	case RequirementMandatory, RequirementOptional, RequirementOff:
		return true
	}
	return false
}

// Requirements maps field ids to their per-job setting
type Requirements map[kernel.FieldID]Requirement

// Validate rejects unknown requirement values
func (r Requirements) Validate() error {
	for id, req := range r {
		if !req.IsValid() {
			return ErrInvalidRequirement().
				WithDetail("field", id.String()).
				WithDetail("value", string(req))
		}
	}
	return nil
}

// ============================================================================
// Registry
// ============================================================================

// Registry is an ordered set of field configs: ascending order_index, unique ids.
// Equal order_index values, which storage rejects, fall back to id order.
type Registry struct {
	fields []FieldConfig
}

// NewRegistry builds a registry from Ordered fields, logging dropped ids
func NewRegistry(fields []FieldConfig) *Registry {
	unique, dropped := Ordered(fields)
	for _, id := range dropped {
		logx.Warnf("profile field %q configured more than once, keeping order_index of first entry", id)
	}
	return &Registry{fields: unique}
}

// Ordered sorts fields by order_index, then id, and drops repeated ids
// keeping the first occurrence in sorted order. The input is not modified.
func Ordered(fields []FieldConfig) (ordered []FieldConfig, dropped []kernel.FieldID) {
	sorted := make([]FieldConfig, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OrderIndex != sorted[j].OrderIndex {
			return sorted[i].OrderIndex < sorted[j].OrderIndex
		}
		return sorted[i].ID < sorted[j].ID
	})

	seen := make(map[kernel.FieldID]struct{}, len(sorted))
	ordered = make([]FieldConfig, 0, len(sorted))
	for _, f := range sorted {
		if _, dup := seen[f.ID]; dup {
			dropped = append(dropped, f.ID)
			continue
		}
		seen[f.ID] = struct{}{}
		ordered = append(ordered, f)
	}
	return ordered, dropped
}

// Fields returns a copy of the ordered field set
func (r *Registry) Fields() []FieldConfig {
	out := make([]FieldConfig, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r *Registry) Len() int { return len(r.fields) }

func (r *Registry) IsEmpty() bool { return len(r.fields) == 0 }

// Get looks up a field by id
func (r *Registry) Get(id kernel.FieldID) (FieldConfig, bool) {
	for _, f := range r.fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// AtOrder returns the field holding orderIndex, ignoring the field with id except
func (r *Registry) AtOrder(orderIndex int, except kernel.FieldID) (FieldConfig, bool) {
	for _, f := range r.fields {
		if f.OrderIndex == orderIndex && f.ID != except {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// ForJob applies a job's overrides. Off removes the field, mandatory and
// optional set the flag, ids without an override keep the registry default.
func (r *Registry) ForJob(reqs Requirements) *Registry {
	out := make([]FieldConfig, 0, len(r.fields))
	for _, f := range r.fields {
		switch reqs[f.ID] {
		case RequirementOff:
			continue
		case RequirementMandatory:
			f.Mandatory = true
		case RequirementOptional:
			f.Mandatory = false
		}
		out = append(out, f)
	}
	return &Registry{fields: out}
}

// DefaultRequirements derives the override map matching the registry defaults
func (r *Registry) DefaultRequirements() Requirements {
	reqs := make(Requirements, len(r.fields))
	for _, f := range r.fields {
		if f.Mandatory {
			reqs[f.ID] = RequirementMandatory
		} else {
			reqs[f.ID] = RequirementOptional
		}
	}
	return reqs
}

// DefaultFields is the seed configuration installed by the first migration
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{ID: FieldFullName, Label: "Full name", Mandatory: true, OrderIndex: 1},
		{ID: FieldPhotoProfile, Label: "Photo Profile", Mandatory: true, OrderIndex: 2},
		{ID: FieldGender, Label: "Gender", Mandatory: true, OrderIndex: 3},
		{ID: FieldDomicile, Label: "Domicile", Mandatory: true, OrderIndex: 4},
		{ID: FieldEmail, Label: "Email", Mandatory: true, OrderIndex: 5},
		{ID: FieldPhoneNumber, Label: "Phone number", Mandatory: true, OrderIndex: 6},
		{ID: FieldLinkedInLink, Label: "Linkedin link", Mandatory: true, OrderIndex: 7},
		{ID: FieldDateOfBirth, Label: "Date of birth", Mandatory: true, OrderIndex: 8},
	}
}
