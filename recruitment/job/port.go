package job

import (
	"context"

	"github.com/Abraxas-365/hirely/pkg/kernel"
)

type Repository interface {
	// Create creates a new job posting
	Create(ctx context.Context, job *JobPosting) error

	// GetByID retrieves a job posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*JobPosting, error)

	// ListByStatus retrieves postings with a status, newest first
	ListByStatus(ctx context.Context, status Status) ([]*JobPosting, error)

	// List retrieves all postings with pagination, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[JobPosting], error)

	// UpdateStatus changes the status of a posting
	UpdateStatus(ctx context.Context, id kernel.JobID, status Status) error
}

// ApplicantReader lists the applications stored against a job
type ApplicantReader interface {
	ListApplicants(ctx context.Context, jobID kernel.JobID) ([]Applicant, error)
}
