package form

import (
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// Kind is the input behavior class of a profile field
type Kind int

const (
	KindGeneric Kind = iota
	KindFullName
	KindEmail
	KindPhone
	KindDateOfBirth
	KindGender
	KindDomicile
	KindLinkedIn
	KindPhoto
)

var kindNames = map[Kind]string{
	KindGeneric:     "generic",
	KindFullName:    "full_name",
	KindEmail:       "email",
	KindPhone:       "phone",
	KindDateOfBirth: "date_of_birth",
	KindGender:      "gender",
	KindDomicile:    "domicile",
	KindLinkedIn:    "linkedin",
	KindPhoto:       "photo",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "generic"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf maps a field id to its kind. Unknown ids are Generic.
func KindOf(id kernel.FieldID) Kind {
	switch id {
	case profilefield.FieldFullName:
		return KindFullName
	case profilefield.FieldEmail:
		return KindEmail
	case profilefield.FieldPhoneNumber:
		return KindPhone
	case profilefield.FieldDateOfBirth:
		return KindDateOfBirth
	case profilefield.FieldGender:
		return KindGender
	case profilefield.FieldDomicile:
		return KindDomicile
	case profilefield.FieldLinkedInLink:
		return KindLinkedIn
	case profilefield.FieldPhotoProfile:
		return KindPhoto
	default:
		return KindGeneric
	}
}

// ============================================================================
// Renderer descriptors
// ============================================================================

// Input is the widget a client renders for a field
type Input string

const (
	InputText   Input = "text"
	InputEmail  Input = "email"
	InputPhone  Input = "phone"
	InputDate   Input = "date"
	InputChoice Input = "choice"
	InputURL    Input = "url"
	InputPhoto  Input = "photo"
)

// Option is one entry of a single-choice field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const (
	PhonePrefix         = "+62"
	DateOfBirthLayout   = "02 January 2006"
	DateOfBirthHint     = "DD January YYYY"
	DomicileOtherOption = "lainnya"
)

var GenderOptions = []Option{
	{Value: "female", Label: "She/Her (Female)"},
	{Value: "male", Label: "He/Him (Male)"},
	{Value: "other", Label: "Other"},
}

var DomicileOptions = []Option{
	{Value: "jakarta", Label: "Jakarta"},
	{Value: "bandung", Label: "Bandung"},
	{Value: "surabaya", Label: "Surabaya"},
	{Value: "yogyakarta", Label: "Yogyakarta"},
	{Value: "semarang", Label: "Semarang"},
	{Value: DomicileOtherOption, Label: "Lainnya"},
}

// Renderer tells a client how to draw one field
type Renderer struct {
	ID          kernel.FieldID `json:"id"`
	Label       string         `json:"label"`
	Mandatory   bool           `json:"mandatory"`
	Kind        Kind           `json:"kind"`
	Input       Input          `json:"input"`
	Options     []Option       `json:"options,omitempty"`
	Prefix      string         `json:"prefix,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Prefilled   bool           `json:"prefilled,omitempty"`
}

// Describe returns the renderer for a field. It never fails: unknown ids
// render as a plain text input labeled with the field label.
func Describe(field profilefield.FieldConfig) Renderer {
	r := Renderer{
		ID:          field.ID,
		Label:       field.Label,
		Mandatory:   field.Mandatory,
		Kind:        KindOf(field.ID),
		Input:       InputText,
		Placeholder: "Enter your " + field.Label,
	}

	switch r.Kind {
	case KindFullName:
		r.Placeholder = "Enter your full name"
		r.Prefilled = true
	case KindEmail:
		r.Input = InputEmail
		r.Placeholder = "Enter your email address"
		r.Prefilled = true
	case KindPhone:
		r.Input = InputPhone
		r.Prefix = PhonePrefix
		r.Placeholder = "81XXXXXXXXX"
	case KindDateOfBirth:
		r.Input = InputDate
		r.Placeholder = DateOfBirthHint
	case KindGender:
		r.Input = InputChoice
		r.Options = GenderOptions
		r.Placeholder = ""
	case KindDomicile:
		r.Input = InputChoice
		r.Options = DomicileOptions
		r.Placeholder = "Choose your domicile"
	case KindLinkedIn:
		r.Input = InputURL
		r.Placeholder = "https://linkedin.com/in/username"
	case KindPhoto:
		r.Input = InputPhoto
		r.Placeholder = ""
	}

	return r
}

// DescribeAll renders every field in registry order
func DescribeAll(fields []profilefield.FieldConfig) []Renderer {
	out := make([]Renderer, 0, len(fields))
	for _, f := range fields {
		out = append(out, Describe(f))
	}
	return out
}

// OptionLabel resolves a stored choice value to its display label
func OptionLabel(kind Kind, value string) string {
	var opts []Option
	switch kind {
	case KindGender:
		opts = GenderOptions
	case KindDomicile:
		opts = DomicileOptions
	default:
		return value
	}
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
