package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "hirely")
	profile := UserProfile{ID: "u-1", Email: "a@b.co", FullName: "Ani", Role: RoleAdmin}

	token, issued, err := svc.GenerateAccessToken(profile)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, profile, claims.Profile())
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.True(t, claims.Profile().IsAdmin())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "hirely")
	token, _, err := svc.GenerateAccessToken(UserProfile{ID: "u-1", Role: RoleApplicant})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTService("other", time.Hour, "hirely").ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken())
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewJWTService("secret", time.Hour, "someone-else").ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken())
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService("secret", time.Hour, "hirely")
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := later.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken())
	})
}

func TestHasScope(t *testing.T) {
	tests := []struct {
		granted  []string
		required string
		want     bool
	}{
		{[]string{ScopeJobsAll}, ScopeJobsWrite, true},
		{[]string{ScopeJobsRead}, ScopeJobsWrite, false},
		{[]string{ScopeAll}, ScopeProfileFieldsWrite, true},
		{RoleScopes[RoleApplicant], ScopeApplicationsSubmit, true},
		{RoleScopes[RoleApplicant], ScopeJobsManage, false},
		{RoleScopes[RoleAdmin], ScopeJobsManage, true},
		{RoleScopes[RoleAdmin], ScopeApplicationsSubmit, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasScope(tt.granted, tt.required), "%v -> %s", tt.granted, tt.required)
	}
}
