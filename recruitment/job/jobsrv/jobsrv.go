package jobsrv

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/recruitment/job"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/google/uuid"
)

// FieldRegistry loads the global profile field registry
type FieldRegistry interface {
	Registry(ctx context.Context) (*profilefield.Registry, error)
}

// JobService provides business operations for job postings
type JobService struct {
	jobRepo    job.Repository
	applicants job.ApplicantReader
	fields     FieldRegistry
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	applicants job.ApplicantReader,
	fields FieldRegistry,
) *JobService {
	return &JobService{
		jobRepo:    jobRepo,
		applicants: applicants,
		fields:     fields,
	}
}

// CreateJob creates a new job posting. Status defaults to ACTIVE, the
// candidate count to 1 and the field requirements to the registry defaults.
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.JobPosting, error) {
	status := req.Status
	if status == "" {
		status = job.StatusActive
	}

	candidates := req.CandidatesNeeded
	if candidates == 0 {
		candidates = 1
	}

	requirements, err := s.resolveRequirements(ctx, req.ProfileRequirements)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newJob := &job.JobPosting{
		ID:                  kernel.NewJobID(uuid.NewString()),
		JobName:             kernel.JobName(strings.TrimSpace(string(req.JobName))),
		Department:          req.Department,
		JobType:             req.JobType,
		Status:              status,
		Description:         req.Description,
		CandidatesNeeded:    candidates,
		MinSalary:           kernel.Rupiah(req.MinSalary),
		MaxSalary:           kernel.Rupiah(req.MaxSalary),
		ProfileRequirements: requirements,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := newJob.Validate(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	logx.With(logx.Fields{
		"job_id": newJob.ID,
		"status": newJob.Status,
	}).Info("job posting created")

	return newJob, nil
}

// resolveRequirements rejects overrides for unknown fields and fills in the
// registry default for every field the request leaves out
func (s *JobService) resolveRequirements(ctx context.Context, reqs profilefield.Requirements) (profilefield.Requirements, error) {
	if err := reqs.Validate(); err != nil {
		return nil, err
	}

	registry, err := s.fields.Registry(ctx)
	if err != nil {
		return nil, err
	}

	resolved := registry.DefaultRequirements()
	for id, r := range reqs {
		if _, ok := registry.Get(id); !ok {
			return nil, job.ErrUnknownField().WithDetail("field", id.String())
		}
		resolved[id] = r
	}
	return resolved, nil
}

// GetJob retrieves a posting. Applicants only see active postings.
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID, includeInactive bool) (*job.JobPosting, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !includeInactive && !posting.IsActive() {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}
	return posting, nil
}

// ListActiveJobs returns the postings open to applicants, newest first
func (s *JobService) ListActiveJobs(ctx context.Context) ([]job.JobResponse, error) {
	jobs, err := s.jobRepo.ListByStatus(ctx, job.StatusActive)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list active jobs", errx.TypeInternal)
	}

	responses := make([]job.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		responses = append(responses, j.ToResponse())
	}
	return responses, nil
}

// ListJobs returns every posting for the admin dashboard
func (s *JobService) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	jobs, err := s.jobRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	responses := make([]job.JobResponse, 0, len(jobs.Items))
	for _, j := range jobs.Items {
		responses = append(responses, j.ToResponse())
	}

	return &job.PaginatedJobsResponse{
		Items: responses,
		Page:  jobs.Page,
		Empty: jobs.Empty,
	}, nil
}

// GetJobWithApplicants returns a posting and its applicants, newest first
func (s *JobService) GetJobWithApplicants(ctx context.Context, jobID kernel.JobID) (*job.JobWithApplicantsResponse, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applicants, err := s.applicants.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applicants", errx.TypeInternal)
	}

	sort.SliceStable(applicants, func(i, j int) bool {
		return applicants[i].CreatedAt.After(applicants[j].CreatedAt)
	})

	rows := make([]job.ApplicantResponse, 0, len(applicants))
	for _, a := range applicants {
		rows = append(rows, job.ApplicantResponse{
			ID:          a.ID,
			CreatedAt:   a.CreatedAt,
			UserID:      a.UserID,
			Row:         a.Row(),
			ProfileData: a.ProfileData,
		})
	}

	return &job.JobWithApplicantsResponse{
		Job:        posting.ToResponse(),
		Applicants: rows,
		Total:      len(rows),
	}, nil
}

// UpdateStatus changes a posting's status
func (s *JobService) UpdateStatus(ctx context.Context, jobID kernel.JobID, status job.Status) (*job.JobPosting, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := posting.ChangeStatus(status); err != nil {
		return nil, err
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, status); err != nil {
		return nil, errx.Wrap(err, "failed to update job status", errx.TypeInternal)
	}

	logx.Infof("job %s moved to %s", jobID, status)
	return posting, nil
}
