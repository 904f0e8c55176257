package jobinfra

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/job"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "job_name", "department", "job_type", "job_status", "job_description",
	"candidates_needed", "min_salary", "max_salary", "profile_requirements",
	"created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO job_postings").
		WithArgs("j1", "Frontend", nil, "full-time", "ACTIVE", nil, 1, 7000000, 8000000,
			[]byte(`{"photo_profile":"off"}`), now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &job.JobPosting{
		ID:                  "j1",
		JobName:             "Frontend",
		JobType:             job.TypeFullTime,
		Status:              job.StatusActive,
		CandidatesNeeded:    1,
		MinSalary:           7000000,
		MaxSalary:           8000000,
		ProfileRequirements: profilefield.Requirements{"photo_profile": profilefield.RequirementOff},
		CreatedAt:           now,
		UpdatedAt:           now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)

	mock.ExpectExec("INSERT INTO job_postings").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &job.JobPosting{ID: "j1"})
	assert.ErrorIs(t, err, job.ErrJobAlreadyExists())
}

func TestGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(columns).AddRow(
		"j1", "Frontend", nil, "contract", "ACTIVE", "Build UIs",
		2, 7000000, nil, []byte(`{"email":"optional"}`), now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM job_postings WHERE id = \\$1").WithArgs("j1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "j1")

	require.NoError(t, err)
	assert.Equal(t, job.TypeContract, got.JobType)
	assert.Equal(t, kernel.Rupiah(7000000), got.MinSalary)
	assert.Equal(t, kernel.Rupiah(0), got.MaxSalary)
	assert.Equal(t, kernel.JobDescription("Build UIs"), got.Description)
	assert.Equal(t, profilefield.RequirementOptional, got.ProfileRequirements["email"])
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM job_postings").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, job.ErrJobNotFound())
}

func TestListByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(columns).
		AddRow("j2", "Backend", nil, "full-time", "ACTIVE", nil, 1, nil, nil, nil, now, now).
		AddRow("j1", "Frontend", nil, "full-time", "ACTIVE", nil, 1, nil, nil, nil, now.Add(-time.Hour), now)
	mock.ExpectQuery("SELECT (.+) FROM job_postings WHERE job_status = \\$1 ORDER BY created_at DESC").
		WithArgs("ACTIVE").
		WillReturnRows(rows)

	jobs, err := repo.ListByStatus(context.Background(), job.StatusActive)

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, kernel.JobID("j2"), jobs[0].ID)
	assert.Nil(t, jobs[1].ProfileRequirements)
}

func TestList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM job_postings").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery("SELECT (.+) FROM job_postings ORDER BY created_at DESC LIMIT \\$1 OFFSET \\$2").
		WithArgs(20, 20).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("j21", "Ops", nil, "internship", "DRAFT", nil, 1, nil, nil, nil, now, now))

	page, err := repo.List(context.Background(), kernel.PaginationOptions{Page: 2, PageSize: 20})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Page.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresJobRepository(db)

	mock.ExpectExec("UPDATE job_postings SET job_status = \\$1").
		WithArgs("INACTIVE", sqlmock.AnyArg(), "j1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE job_postings SET job_status = \\$1").
		WithArgs("INACTIVE", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateStatus(context.Background(), "j1", job.StatusInactive))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "missing", job.StatusInactive), job.ErrJobNotFound())
}
