package job

import (
	"encoding/json"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// SalaryInput accepts either a JSON number or a formatted string such as "7.000.000"
type SalaryInput kernel.Rupiah

func (s *SalaryInput) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = SalaryInput(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = SalaryInput(ParseCurrency(str))
	return nil
}

// CreateJobRequest - DTO for creating a new job posting
type CreateJobRequest struct {
	JobName             kernel.JobName            `json:"job_name"`
	Department          kernel.Department         `json:"department,omitempty"`
	JobType             Type                      `json:"job_type"`
	Description         kernel.JobDescription     `json:"job_description"`
	CandidatesNeeded    int                       `json:"candidates_needed,omitempty"`
	MinSalary           SalaryInput               `json:"min_salary"`
	MaxSalary           SalaryInput               `json:"max_salary"`
	Status              Status                    `json:"job_status,omitempty"`
	ProfileRequirements profilefield.Requirements `json:"profile_requirements,omitempty"`
}

// UpdateStatusRequest - DTO for changing a posting's status
type UpdateStatusRequest struct {
	Status Status `json:"job_status"`
}

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID                  kernel.JobID              `json:"id"`
	JobName             kernel.JobName            `json:"job_name"`
	Department          kernel.Department         `json:"department"`
	JobType             Type                      `json:"job_type"`
	JobTypeLabel        string                    `json:"job_type_label"`
	Status              Status                    `json:"job_status"`
	Description         kernel.JobDescription     `json:"job_description"`
	CandidatesNeeded    int                       `json:"candidates_needed"`
	MinSalary           kernel.Rupiah             `json:"min_salary"`
	MaxSalary           kernel.Rupiah             `json:"max_salary"`
	SalaryRange         string                    `json:"salary_range"`
	ProfileRequirements profilefield.Requirements `json:"profile_requirements"`
	CreatedAt           time.Time                 `json:"created_at"`
}

// ToResponse converts a posting to its DTO
func (j *JobPosting) ToResponse() JobResponse {
	return JobResponse{
		ID:                  j.ID,
		JobName:             j.JobName,
		Department:          j.Department,
		JobType:             j.JobType,
		JobTypeLabel:        j.JobType.Label(),
		Status:              j.Status,
		Description:         j.Description,
		CandidatesNeeded:    j.CandidatesNeeded,
		MinSalary:           j.MinSalary,
		MaxSalary:           j.MaxSalary,
		SalaryRange:         j.SalaryRange(),
		ProfileRequirements: j.ProfileRequirements,
		CreatedAt:           j.CreatedAt,
	}
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// ApplicantResponse - one candidate table row plus the raw profile data
type ApplicantResponse struct {
	ID          kernel.ApplicationID `json:"id"`
	CreatedAt   time.Time            `json:"created_at"`
	UserID      kernel.UserID        `json:"user_id"`
	Row         form.CandidateRow    `json:"row"`
	ProfileData []form.Entry         `json:"profile_data"`
}

// JobWithApplicantsResponse - DTO for the manage candidates page
type JobWithApplicantsResponse struct {
	Job        JobResponse         `json:"job"`
	Applicants []ApplicantResponse `json:"applicants"`
	Total      int                 `json:"total"`
}
