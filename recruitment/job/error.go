package job

import (
	"net/http"

	"github.com/Abraxas-365/hirely/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeInvalidJob         = ErrRegistry.Register("INVALID_JOB", errx.TypeValidation, http.StatusBadRequest, "Invalid job posting")
	CodeInvalidStatus      = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Status must be ACTIVE, INACTIVE or DRAFT")
	CodeInvalidSalaryRange = ErrRegistry.Register("INVALID_SALARY_RANGE", errx.TypeValidation, http.StatusBadRequest, "Minimum salary cannot exceed maximum salary")
	CodeUnknownField       = ErrRegistry.Register("UNKNOWN_PROFILE_FIELD", errx.TypeValidation, http.StatusBadRequest, "Profile requirement refers to an unknown field")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrInvalidJob() *errx.Error {
	return ErrRegistry.New(CodeInvalidJob)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidSalaryRange() *errx.Error {
	return ErrRegistry.New(CodeInvalidSalaryRange)
}

func ErrUnknownField() *errx.Error {
	return ErrRegistry.New(CodeUnknownField)
}
