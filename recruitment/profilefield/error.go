package profilefield

import (
	"net/http"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("PROFILE_FIELD")

var (
	CodeConfigLoadFailed   = ErrRegistry.Register("CONFIG_LOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to load form configuration")
	CodeFieldNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile field not found")
	CodeInvalidField       = ErrRegistry.Register("INVALID_FIELD", errx.TypeValidation, http.StatusBadRequest, "Invalid profile field definition")
	CodeInvalidRequirement = ErrRegistry.Register("INVALID_REQUIREMENT", errx.TypeValidation, http.StatusBadRequest, "Requirement must be mandatory, optional or off")
)

// ErrConfigLoad is the ConfigLoadError surfaced to users verbatim
func ErrConfigLoad(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeConfigLoadFailed, cause)
}

func ErrFieldNotFound() *errx.Error {
	return ErrRegistry.New(CodeFieldNotFound)
}

func ErrInvalidField() *errx.Error {
	return ErrRegistry.New(CodeInvalidField)
}

// ErrOrderTaken rejects a definition whose order_index belongs to another field
func ErrOrderTaken(id kernel.FieldID, orderIndex int) *errx.Error {
	return ErrInvalidField().
		WithDetail("id", id.String()).
		WithDetail("order_index", orderIndex).
		WithDetail("reason", "order_index already used")
}

func ErrInvalidRequirement() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequirement)
}
