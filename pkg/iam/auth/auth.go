package auth

import (
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
)

// Role separates administrators from applicants
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleApplicant Role = "APPLICANT"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleApplicant
}

// User is the stored account, including credentials
type User struct {
	ID           kernel.UserID   `db:"id" json:"id"`
	Email        kernel.Email    `db:"email" json:"email"`
	PasswordHash string          `db:"password_hash" json:"-"`
	FullName     kernel.FullName `db:"full_name" json:"full_name"`
	Role         Role            `db:"role" json:"role"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Profile strips credentials
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// UserProfile is what the rest of the system sees of a user
type UserProfile struct {
	ID       kernel.UserID   `json:"id"`
	Email    kernel.Email    `json:"email"`
	FullName kernel.FullName `json:"full_name"`
	Role     Role            `json:"role"`
}

func (p UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Scopes returns the scopes granted by the profile's role
func (p UserProfile) Scopes() []string {
	return RoleScopes[p.Role]
}

// Session is an authenticated user plus the token that proves it
type Session struct {
	AccessToken string      `json:"access_token"`
	TokenID     string      `json:"-"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        UserProfile `json:"user"`
}

// HasScope checks the session's role scopes
func (s *Session) HasScope(scope string) bool {
	return HasScope(s.User.Scopes(), scope)
}

// ============================================================================
// Auth state events
// ============================================================================

// AuthEvent names a session lifecycle transition
type AuthEvent string

const (
	EventSignedUp  AuthEvent = "SIGNED_UP"
	EventSignedIn  AuthEvent = "SIGNED_IN"
	EventSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthStateListener receives lifecycle events. Session is nil for SIGNED_OUT.
type AuthStateListener func(event AuthEvent, session *Session)
