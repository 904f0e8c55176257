package applicationapi

import (
	"strings"

	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/hirely/recruitment/capture"
	"github.com/gofiber/fiber/v2"
)

// photoFormField is the multipart part carrying the captured photo
const photoFormField = "photo"

// Handlers provides HTTP handlers for the applicant form
type Handlers struct {
	service       *applicationsrv.Service
	maxPhotoBytes int64
}

func NewHandlers(service *applicationsrv.Service, maxPhotoBytes int64) *Handlers {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = capture.DefaultMaxBytes
	}
	return &Handlers{
		service:       service,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// GetForm returns the fields, renderers and prefilled values for a job
// GET /api/applications/jobs/:jobId/form
func (h *Handlers) GetForm(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	session, _ := auth.GetSession(c)

	resp, err := h.service.FormFor(c.UserContext(), session, jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Submit applies to a job. Accepts multipart/form-data (one part per field
// id plus a "photo" file) or JSON with the photo as a data URL.
// POST /api/applications/jobs/:jobId
func (h *Handlers) Submit(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	session, _ := auth.GetSession(c)

	values, device, err := h.parseSubmission(c)
	if err != nil {
		return err
	}

	sub := applicationsrv.Submission{
		JobID:  jobID,
		Values: values,
	}
	if device != nil {
		photo, err := capture.Capture(c.UserContext(), device)
		if err != nil {
			return err
		}
		sub.Photo = photo
	}

	app, err := h.service.Submit(c.UserContext(), session, sub)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app.ToResponse())
}

// GetApplication returns one stored application
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	id := kernel.ApplicationID(c.Params("id"))
	if id.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	app, err := h.service.GetApplication(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(app.ToResponse())
}

func (h *Handlers) parseSubmission(c *fiber.Ctx) (map[kernel.FieldID]string, capture.Device, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.parseMultipart(c)
	}

	var req application.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if req.Photo == "" {
		return req.Values, nil, nil
	}

	device, err := capture.NewUploadDeviceFromDataURL(req.Photo, h.maxPhotoBytes)
	if err != nil {
		return nil, nil, err
	}
	return req.Values, device, nil
}

func (h *Handlers) parseMultipart(c *fiber.Ctx) (map[kernel.FieldID]string, capture.Device, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	values := make(map[kernel.FieldID]string, len(form.Value))
	for key, v := range form.Value {
		if len(v) > 0 {
			values[kernel.FieldID(key)] = v[0]
		}
	}

	files := form.File[photoFormField]
	if len(files) == 0 {
		return values, nil, nil
	}

	device, err := capture.NewUploadDeviceFromFile(files[0], h.maxPhotoBytes)
	if err != nil {
		return nil, nil, err
	}
	return values, device, nil
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	api.Get("/jobs/:jobId/form",
		authMiddleware.RequireScope(auth.ScopeApplicationsSubmit),
		handlers.GetForm,
	)

	api.Post("/jobs/:jobId",
		authMiddleware.RequireScope(auth.ScopeApplicationsSubmit),
		handlers.Submit,
	)

	api.Get("/:id",
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.GetApplication,
	)
}
