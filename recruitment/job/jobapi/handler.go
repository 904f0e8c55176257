package jobapi

import (
	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/job"
	"github.com/Abraxas-365/hirely/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob.ToResponse())
}

// ListActiveJobs lists postings open to applicants
// GET /api/jobs/active
func (h *Handlers) ListActiveJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListActiveJobs(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// ListJobs retrieves all jobs with pagination
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	jobs, err := h.service.ListJobs(c.UserContext(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJob retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	session, _ := auth.GetSession(c)
	includeInactive := session != nil && session.User.IsAdmin()

	posting, err := h.service.GetJob(c.UserContext(), jobID, includeInactive)
	if err != nil {
		return err
	}

	return c.JSON(posting.ToResponse())
}

// GetJobWithApplicants returns the posting with its candidate table
// GET /api/jobs/:id/applicants
func (h *Handlers) GetJobWithApplicants(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	result, err := h.service.GetJobWithApplicants(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// UpdateStatus changes a posting's status
// PATCH /api/jobs/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidStatus().WithDetail("parse_error", err.Error())
	}

	posting, err := h.service.UpdateStatus(c.UserContext(), jobID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(posting.ToResponse())
}

// ============================================================================
// Helper Functions
// ============================================================================

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	// Ensure valid values
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/jobs", authMiddleware.Authenticate())

	// Applicant routes
	api.Get("/active",
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.ListActiveJobs,
	)

	// Admin routes
	api.Get("/",
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.ListJobs,
	)

	api.Post("/",
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Get("/:id",
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.GetJob,
	)

	api.Get("/:id/applicants",
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.GetJobWithApplicants,
	)

	api.Patch("/:id/status",
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeJobsManage),
		handlers.UpdateStatus,
	)
}
