package form

import (
	"net/http"

	"github.com/Abraxas-365/hirely/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("FORM")

var (
	CodeValidationFailed = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "A required field is missing")
)

// ErrValidation is the ValidationError raised when a mandatory field is unset
func ErrValidation(v Verdict) *errx.Error {
	return ErrRegistry.NewWithMessage(CodeValidationFailed, v.Message).
		WithDetail("field", v.Field.String()).
		WithDetail("label", v.Label)
}
