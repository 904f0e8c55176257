package form

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// CandidateRow is one line of the admin candidate table
type CandidateRow struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DateOfBirth  string `json:"date_of_birth"`
	Domicile     string `json:"domicile"`
	Gender       string `json:"gender"`
	LinkedInLink string `json:"linkedin_link"`
	PhotoKey     string `json:"photo,omitempty"`
}

// Row flattens stored profile data. Missing values render as "-".
func Row(entries []Entry) CandidateRow {
	get := func(id kernel.FieldID) string {
		v, _ := Lookup(entries, id)
		if strings.TrimSpace(v) == "" {
			return "-"
		}
		return v
	}

	photo, _ := Lookup(entries, profilefield.FieldPhotoProfile)

	row := CandidateRow{
		FullName:     get(profilefield.FieldFullName),
		Email:        get(profilefield.FieldEmail),
		Phone:        get(profilefield.FieldPhoneNumber),
		DateOfBirth:  FormatDateOfBirth(get(profilefield.FieldDateOfBirth)),
		Domicile:     get(profilefield.FieldDomicile),
		Gender:       get(profilefield.FieldGender),
		LinkedInLink: get(profilefield.FieldLinkedInLink),
		PhotoKey:     photo,
	}
	if row.Domicile != "-" {
		row.Domicile = OptionLabel(KindDomicile, row.Domicile)
	}
	if row.Gender != "-" {
		row.Gender = OptionLabel(KindGender, row.Gender)
	}
	return row
}

var dateInputLayouts = []string{
	"2006-01-02",
	DateOfBirthLayout,
	"2 January 2006",
	"02/01/2006",
	time.RFC3339,
}

// FormatDateOfBirth renders a stored date as "02 January 2006". Values that
// do not parse are returned unchanged.
func FormatDateOfBirth(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(DateOfBirthLayout)
		}
	}
	return value
}
