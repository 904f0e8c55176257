package job

import (
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// Status represents the status of a job posting
type Status string

const (
	StatusActive   Status = "ACTIVE"   // Listed and accepting applications
	StatusInactive Status = "INACTIVE" // Closed
	StatusDraft    Status = "DRAFT"    // Not yet listed
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDraft:
		return true
	}
	return false
}

// Type is the employment type
type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
)

var typeLabels = map[Type]string{
	TypeFullTime:   "Full-time",
	TypePartTime:   "Part-time",
	TypeContract:   "Contract",
	TypeInternship: "Internship",
}

func (t Type) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

type JobPosting struct {
	ID                  kernel.JobID              `db:"id" json:"id"`
	JobName             kernel.JobName            `db:"job_name" json:"job_name"`
	Department          kernel.Department         `db:"department" json:"department"`
	JobType             Type                      `db:"job_type" json:"job_type"`
	Status              Status                    `db:"job_status" json:"job_status"`
	Description         kernel.JobDescription     `db:"job_description" json:"job_description"`
	CandidatesNeeded    int                       `db:"candidates_needed" json:"candidates_needed"`
	MinSalary           kernel.Rupiah             `db:"min_salary" json:"min_salary"`
	MaxSalary           kernel.Rupiah             `db:"max_salary" json:"max_salary"`
	ProfileRequirements profilefield.Requirements `db:"profile_requirements" json:"profile_requirements"`
	CreatedAt           time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time                 `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the job is listed to applicants
func (j *JobPosting) IsActive() bool {
	return j.Status == StatusActive
}

// SalaryRange renders the salary band for display
func (j *JobPosting) SalaryRange() string {
	return FormatSalaryRange(j.MinSalary, j.MaxSalary)
}

// ChangeStatus moves the posting to another status
func (j *JobPosting) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", string(status))
	}
	j.Status = status
	j.UpdatedAt = time.Now()
	return nil
}

// Validate checks the invariants of a new posting
func (j *JobPosting) Validate() error {
	if j.JobName == "" {
		return ErrInvalidJob().WithDetail("job_name", "required")
	}
	if !j.JobType.IsValid() {
		return ErrInvalidJob().WithDetail("job_type", string(j.JobType))
	}
	if !j.Status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", string(j.Status))
	}
	if j.CandidatesNeeded < 1 {
		return ErrInvalidJob().WithDetail("candidates_needed", "must be at least 1")
	}
	if j.MinSalary < 0 || j.MaxSalary < 0 {
		return ErrInvalidSalaryRange().WithDetail("reason", "salary cannot be negative")
	}
	if j.MinSalary > 0 && j.MaxSalary > 0 && j.MinSalary > j.MaxSalary {
		return ErrInvalidSalaryRange().
			WithDetail("min_salary", int64(j.MinSalary)).
			WithDetail("max_salary", int64(j.MaxSalary))
	}
	return j.ProfileRequirements.Validate()
}

// ============================================================================
// Applicants
// ============================================================================

// Applicant is a stored application as seen from its job
type Applicant struct {
	ID          kernel.ApplicationID `json:"id"`
	CreatedAt   time.Time            `json:"created_at"`
	UserID      kernel.UserID        `json:"user_id"`
	ProfileData []form.Entry         `json:"profile_data"`
}

// Row flattens the profile data for the candidate table
func (a Applicant) Row() form.CandidateRow {
	return form.Row(a.ProfileData)
}
