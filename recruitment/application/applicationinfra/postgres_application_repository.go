package applicationinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository and
// job.ApplicantReader using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID          string          `db:"id"`
	JobID       string          `db:"job_id"`
	UserID      sql.NullString  `db:"user_id"`
	ProfileData json.RawMessage `db:"profile_data"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (m *applicationModel) toEntity() (*application.Application, error) {
	entries := []form.Entry{}
	if len(m.ProfileData) > 0 {
		if err := json.Unmarshal(m.ProfileData, &entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile data: %w", err)
		}
	}

	return &application.Application{
		ID:          kernel.ApplicationID(m.ID),
		JobID:       kernel.JobID(m.JobID),
		UserID:      kernel.UserID(m.UserID.String),
		ProfileData: entries,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func fromEntity(a *application.Application) (*applicationModel, error) {
	entries := a.ProfileData
	if entries == nil {
		entries = []form.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile data: %w", err)
	}

	return &applicationModel{
		ID:          a.ID.String(),
		JobID:       a.JobID.String(),
		UserID:      sql.NullString{String: a.UserID.String(), Valid: !a.UserID.IsEmpty()},
		ProfileData: data,
		CreatedAt:   a.CreatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	model, err := fromEntity(a)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO job_applications (id, job_id, user_id, profile_data, created_at)
		VALUES (:id, :job_id, :user_id, :profile_data, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return job.ErrJobNotFound().WithDetail("job_id", a.JobID.String())
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `
		SELECT id, job_id, user_id, profile_data, created_at
		FROM job_applications
		WHERE id = $1
	`

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("id", id.String())
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return model.toEntity()
}

// ListByJob retrieves the applications for a job, newest first
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*application.Application, error) {
	query := `
		SELECT id, job_id, user_id, profile_data, created_at
		FROM job_applications
		WHERE job_id = $1
		ORDER BY created_at DESC
	`

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, jobID.String()); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]*application.Application, 0, len(models))
	for i := range models {
		a, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// ListApplicants implements job.ApplicantReader
func (r *PostgresApplicationRepository) ListApplicants(ctx context.Context, jobID kernel.JobID) ([]job.Applicant, error) {
	apps, err := r.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applicants := make([]job.Applicant, 0, len(apps))
	for _, a := range apps {
		applicants = append(applicants, job.Applicant{
			ID:          a.ID,
			CreatedAt:   a.CreatedAt,
			UserID:      a.UserID,
			ProfileData: a.ProfileData,
		})
	}
	return applicants, nil
}
