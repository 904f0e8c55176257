package application

import (
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
)

// Application is one submitted profile for one job
type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	JobID       kernel.JobID         `db:"job_id" json:"job_id"`
	UserID      kernel.UserID        `db:"user_id" json:"user_id"`
	ProfileData []form.Entry         `db:"profile_data" json:"profile_data"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// PhotoKey returns the storage key of the captured photo, if one was stored
func (a *Application) PhotoKey() kernel.PhotoKey {
	v, _ := form.Lookup(a.ProfileData, profilefield.FieldPhotoProfile)
	return kernel.PhotoKey(v)
}

// Value returns a submitted value by field id
func (a *Application) Value(id kernel.FieldID) string {
	v, _ := form.Lookup(a.ProfileData, id)
	return v
}

// SubmittedEvent is published after an application is stored
type SubmittedEvent struct {
	ApplicationID kernel.ApplicationID `json:"application_id"`
	JobID         kernel.JobID         `json:"job_id"`
	JobName       kernel.JobName       `json:"job_name"`
	UserID        kernel.UserID        `json:"user_id"`
	Email         kernel.Email         `json:"email"`
	FullName      kernel.FullName      `json:"full_name"`
	SubmittedAt   time.Time            `json:"submitted_at"`
}
