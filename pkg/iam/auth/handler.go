package auth

import (
	"errors"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the session lifecycle over HTTP
type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

type SignUpRequest struct {
	Email    kernel.Email    `json:"email"`
	Password string          `json:"password"`
	FullName kernel.FullName `json:"full_name"`
}

type SignInRequest struct {
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
}

// SignUp registers an applicant
// POST /auth/signup
func (h *Handlers) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrInvalidSignUp().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.SignUp(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// SignIn opens a session
// POST /auth/signin
func (h *Handlers) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrInvalidCredentials()
	}

	session, err := h.service.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// SignOut revokes the caller's token
// POST /auth/signout
func (h *Handlers) SignOut(c *fiber.Ctx) error {
	session, ok := GetSession(c)
	if !ok {
		return ErrMissingToken()
	}

	if err := h.service.SignOut(c.UserContext(), session.AccessToken); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Session returns the caller's session with the stored profile, so edits
// made after sign in show up. A deleted account ends the session.
// GET /auth/session
func (h *Handlers) Session(c *fiber.Ctx) error {
	session, ok := GetSession(c)
	if !ok {
		return ErrMissingToken()
	}

	profile, err := h.service.GetProfile(c.UserContext(), session.User.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound()) {
			return ErrSessionRevoked()
		}
		return err
	}

	current := *session
	current.User = *profile
	return c.JSON(current)
}

// RegisterRoutes registers the /auth routes
func (h *Handlers) RegisterRoutes(app *fiber.App, mw *Middleware) {
	api := app.Group("/auth")

	api.Post("/signup", h.SignUp)
	api.Post("/signin", h.SignIn)
	api.Post("/signout", mw.Authenticate(), h.SignOut)
	api.Get("/session", mw.Authenticate(), h.Session)
}
