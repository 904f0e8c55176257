package application

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfileData(t *testing.T) {
	tests := []struct {
		name    string
		entries []form.Entry
		wantErr bool
	}{
		{name: "nil", entries: nil},
		{name: "typical", entries: []form.Entry{
			{Key: "full_name", Label: "Full name", Value: "Budi"},
			{Key: "photo_profile", Label: "Photo Profile", Value: ""},
		}},
		{name: "empty key", entries: []form.Entry{{Key: "", Label: "x", Value: "y"}}, wantErr: true},
		{name: "oversized value", entries: []form.Entry{
			{Key: "linkedin_link", Label: "Linkedin link", Value: strings.Repeat("a", 2049)},
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileData(tt.entries)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfileData())
			e, ok := errx.As(err)
			require.True(t, ok)
			assert.NotEmpty(t, e.Details["errors"])
		})
	}
}

func TestApplication_Lookups(t *testing.T) {
	app := &Application{ProfileData: []form.Entry{
		{Key: "email", Label: "Email", Value: "a@b.co"},
		{Key: "photo_profile", Label: "Photo Profile", Value: "photos/j1/u1-x.png"},
	}}

	assert.Equal(t, "a@b.co", app.Value("email"))
	assert.Equal(t, "", app.Value("gender"))
	assert.Equal(t, "photos/j1/u1-x.png", app.PhotoKey().String())
}
