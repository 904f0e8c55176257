package application

import (
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/job"
)

// SubmitRequest - JSON body of an application submission. Photo is a data URL.
type SubmitRequest struct {
	Values map[kernel.FieldID]string `json:"values"`
	Photo  string                    `json:"photo,omitempty"`
}

// ApplicationResponse - DTO returned after a successful submission
type ApplicationResponse struct {
	ID          kernel.ApplicationID `json:"id"`
	JobID       kernel.JobID         `json:"job_id"`
	ProfileData []form.Entry         `json:"profile_data"`
	CreatedAt   time.Time            `json:"created_at"`
}

func (a *Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ProfileData: a.ProfileData,
		CreatedAt:   a.CreatedAt,
	}
}

// FormResponse - everything the applicant page needs to render the form
type FormResponse struct {
	Job           job.JobResponse           `json:"job"`
	Fields        []form.Renderer           `json:"fields"`
	Values        map[kernel.FieldID]string `json:"values"`
	PhotoRequired bool                      `json:"photo_required"`
}
