package auth_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(svc *auth.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	mw := auth.NewMiddleware(svc)
	auth.NewHandlers(svc).RegisterRoutes(app, mw)
	app.Get("/admin", mw.Authenticate(), mw.RequireRole(auth.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/apply", mw.Authenticate(), mw.RequireScope(auth.ScopeApplicationsSubmit), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddleware(t *testing.T) {
	svc, _ := newTestService(t)
	app := newTestApp(svc)
	session, err := svc.SignUp(context.Background(), "a@b.co", "secret123", "A")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/apply", "", fiber.StatusUnauthorized},
		{"malformed header", "/apply", "Token abc", fiber.StatusUnauthorized},
		{"applicant may apply", "/apply", "Bearer " + session.AccessToken, fiber.StatusOK},
		{"applicant is not admin", "/admin", "Bearer " + session.AccessToken, fiber.StatusForbidden},
		{"session endpoint", "/auth/session", "Bearer " + session.AccessToken, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestHandlers_SessionReturnsStoredProfile(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	app := newTestApp(svc)
	session, err := svc.SignUp(ctx, "a@b.co", "secret123", "Ani")
	require.NoError(t, err)

	users.mu.Lock()
	users.users[session.User.ID].FullName = "Ani Lestari"
	users.mu.Unlock()

	req := httptest.NewRequest("GET", "/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body auth.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, kernel.FullName("Ani Lestari"), body.User.FullName)
	assert.Equal(t, session.AccessToken, body.AccessToken)

	users.mu.Lock()
	delete(users.users, session.User.ID)
	users.mu.Unlock()

	req = httptest.NewRequest("GET", "/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandlers_SignOut(t *testing.T) {
	svc, _ := newTestService(t)
	app := newTestApp(svc)
	session, err := svc.SignUp(context.Background(), "a@b.co", "secret123", "A")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/auth/signout", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest("GET", "/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
