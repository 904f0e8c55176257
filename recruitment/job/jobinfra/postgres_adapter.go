package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/job"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

const jobColumns = `
	id, job_name, department, job_type, job_status, job_description,
	candidates_needed, min_salary, max_salary, profile_requirements,
	created_at, updated_at
`

type jobModel struct {
	ID                  string          `db:"id"`
	JobName             string          `db:"job_name"`
	Department          sql.NullString  `db:"department"`
	JobType             string          `db:"job_type"`
	JobStatus           string          `db:"job_status"`
	JobDescription      sql.NullString  `db:"job_description"`
	CandidatesNeeded    int             `db:"candidates_needed"`
	MinSalary           sql.NullInt64   `db:"min_salary"`
	MaxSalary           sql.NullInt64   `db:"max_salary"`
	ProfileRequirements json.RawMessage `db:"profile_requirements"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.JobPosting, error) {
	var requirements profilefield.Requirements
	if len(m.ProfileRequirements) > 0 {
		if err := json.Unmarshal(m.ProfileRequirements, &requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile requirements: %w", err)
		}
	}

	return &job.JobPosting{
		ID:                  kernel.JobID(m.ID),
		JobName:             kernel.JobName(m.JobName),
		Department:          kernel.Department(m.Department.String),
		JobType:             job.Type(m.JobType),
		Status:              job.Status(m.JobStatus),
		Description:         kernel.JobDescription(m.JobDescription.String),
		CandidatesNeeded:    m.CandidatesNeeded,
		MinSalary:           kernel.Rupiah(m.MinSalary.Int64),
		MaxSalary:           kernel.Rupiah(m.MaxSalary.Int64),
		ProfileRequirements: requirements,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.JobPosting) (*jobModel, error) {
	requirements, err := json.Marshal(j.ProfileRequirements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile requirements: %w", err)
	}

	return &jobModel{
		ID:                  j.ID.String(),
		JobName:             string(j.JobName),
		Department:          sql.NullString{String: string(j.Department), Valid: j.Department != ""},
		JobType:             string(j.JobType),
		JobStatus:           string(j.Status),
		JobDescription:      sql.NullString{String: string(j.Description), Valid: j.Description != ""},
		CandidatesNeeded:    j.CandidatesNeeded,
		MinSalary:           sql.NullInt64{Int64: int64(j.MinSalary), Valid: j.MinSalary > 0},
		MaxSalary:           sql.NullInt64{Int64: int64(j.MaxSalary), Valid: j.MaxSalary > 0},
		ProfileRequirements: requirements,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}, nil
}

func toEntities(models []jobModel) ([]*job.JobPosting, error) {
	jobs := make([]*job.JobPosting, 0, len(models))
	for i := range models {
		j, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job posting
func (r *PostgresJobRepository) Create(ctx context.Context, posting *job.JobPosting) error {
	model, err := fromEntity(posting)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO job_postings (` + jobColumns + `) VALUES (
			:id, :job_name, :department, :job_type, :job_status, :job_description,
			:candidates_needed, :min_salary, :max_salary, :profile_requirements,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return job.ErrJobAlreadyExists()
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job posting by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE id = $1`

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return model.toEntity()
}

// ListByStatus retrieves postings with a status, newest first
func (r *PostgresJobRepository) ListByStatus(ctx context.Context, status job.Status) ([]*job.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE job_status = $1 ORDER BY created_at DESC`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, string(status)); err != nil {
		return nil, fmt.Errorf("failed to list jobs by status: %w", err)
	}

	return toEntities(models)
}

// List retrieves all postings with pagination, newest first
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobPosting], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_postings`); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `SELECT ` + jobColumns + ` FROM job_postings ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs, err := toEntities(models)
	if err != nil {
		return nil, err
	}

	items := make([]job.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, *j)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// UpdateStatus changes the status of a posting
func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id kernel.JobID, status job.Status) error {
	query := `UPDATE job_postings SET job_status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}
