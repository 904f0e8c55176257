package profilefieldapi

import (
	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/Abraxas-365/hirely/recruitment/profilefield/profilefieldsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for the profile field registry
type Handlers struct {
	service *profilefieldsrv.Service
}

func NewHandlers(service *profilefieldsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// UpsertFieldRequest is the body of PUT /api/profile-fields/:id
type UpsertFieldRequest struct {
	Label      string `json:"label"`
	Mandatory  bool   `json:"mandatory"`
	OrderIndex int    `json:"order_index"`
}

// ListFields returns the ordered registry
// GET /api/profile-fields
func (h *Handlers) ListFields(c *fiber.Ctx) error {
	fields, err := h.service.LoadFieldConfig(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"fields": fields,
		"count":  len(fields),
	})
}

// UpsertField creates or replaces one field definition
// PUT /api/profile-fields/:id
func (h *Handlers) UpsertField(c *fiber.Ctx) error {
	id := kernel.FieldID(c.Params("id"))
	if id.IsEmpty() {
		return profilefield.ErrInvalidField().WithDetail("id", "missing or empty")
	}

	var req UpsertFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return profilefield.ErrInvalidField().WithDetail("parse_error", err.Error())
	}

	saved, err := h.service.UpsertField(c.UserContext(), profilefield.FieldConfig{
		ID:         id,
		Label:      req.Label,
		Mandatory:  req.Mandatory,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return err
	}

	return c.JSON(saved)
}

// DeleteField removes a field definition
// DELETE /api/profile-fields/:id
func (h *Handlers) DeleteField(c *fiber.Ctx) error {
	id := kernel.FieldID(c.Params("id"))

	if err := h.service.DeleteField(c.UserContext(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// RegisterRoutes registers all profile field routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/profile-fields", authMiddleware.Authenticate())

	api.Get("/",
		authMiddleware.RequireScope(auth.ScopeProfileFieldsRead),
		handlers.ListFields,
	)

	api.Put("/:id",
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeProfileFieldsWrite),
		handlers.UpsertField,
	)

	api.Delete("/:id",
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeProfileFieldsWrite),
		handlers.DeleteField,
	)
}
