package application

import (
	"net/http"

	"github.com/Abraxas-365/hirely/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeSubmissionFailed    = ErrRegistry.Register("SUBMISSION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to submit application")
	CodeSubmissionInFlight  = ErrRegistry.Register("SUBMISSION_IN_FLIGHT", errx.TypeConflict, http.StatusConflict, "An application for this job is already being submitted")
	CodeJobNotActive        = ErrRegistry.Register("JOB_NOT_ACTIVE", errx.TypeBusiness, http.StatusConflict, "Job is not accepting applications")
	CodeInvalidProfileData  = ErrRegistry.Register("INVALID_PROFILE_DATA", errx.TypeValidation, http.StatusUnprocessableEntity, "Profile data does not match the expected shape")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

// ErrSubmission is the SubmissionError surfaced to users verbatim
func ErrSubmission(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeSubmissionFailed, cause)
}

func ErrSubmissionInFlight() *errx.Error {
	return ErrRegistry.New(CodeSubmissionInFlight)
}

func ErrJobNotActive() *errx.Error {
	return ErrRegistry.New(CodeJobNotActive)
}

func ErrInvalidProfileData() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfileData)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
