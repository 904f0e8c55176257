package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "auth_session"

// Middleware authenticates bearer tokens and enforces roles and scopes
type Middleware struct {
	service *Service
}

func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate requires a valid, non revoked bearer token
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		session, err := m.service.GetSession(c.UserContext(), token)
		if err != nil {
			return err
		}

		SetSession(c, session)
		return c.Next()
	}
}

// RequireRole must run after Authenticate
func (m *Middleware) RequireRole(role Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := GetSession(c)
		if !ok {
			return ErrMissingToken()
		}
		if session.User.Role != role {
			return ErrForbidden().WithDetail("required_role", string(role))
		}
		return c.Next()
	}
}

// RequireScope must run after Authenticate
func (m *Middleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := GetSession(c)
		if !ok {
			return ErrMissingToken()
		}
		if !session.HasScope(scope) {
			return ErrForbidden().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// SetSession stores an authenticated session on the request
func SetSession(c *fiber.Ctx, session *Session) {
	c.Locals(sessionLocalsKey, session)
}

// GetSession extracts the session stored by Authenticate
func GetSession(c *fiber.Ctx) (*Session, bool) {
	session, ok := c.Locals(sessionLocalsKey).(*Session)
	return session, ok && session != nil
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingToken()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken().WithDetail("reason", "expected Bearer token")
	}
	return strings.TrimSpace(parts[1]), nil
}
