package capture

import (
	"net/http"

	"github.com/Abraxas-365/hirely/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CAPTURE")

var (
	CodePermissionDenied = ErrRegistry.Register("PERMISSION_DENIED", errx.TypeAuthorization, http.StatusForbidden, "Camera permission denied. Allow access and try again.")
	CodeNoDevice         = ErrRegistry.Register("NO_DEVICE", errx.TypeValidation, http.StatusBadRequest, "No camera found")
	CodeUnavailable      = ErrRegistry.Register("UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "Camera is not available")
	CodeNoPhoto          = ErrRegistry.Register("NO_PHOTO", errx.TypeValidation, http.StatusBadRequest, "No photo has been captured")
	CodeInvalidImage     = ErrRegistry.Register("INVALID_IMAGE", errx.TypeValidation, http.StatusBadRequest, "Photo must be a JPEG, PNG or WebP image")
	CodeTooLarge         = ErrRegistry.Register("TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Photo is too large")
)

func ErrPermissionDenied() *errx.Error {
	return ErrRegistry.New(CodePermissionDenied)
}

func ErrNoDevice() *errx.Error {
	return ErrRegistry.New(CodeNoDevice)
}

func ErrUnavailable() *errx.Error {
	return ErrRegistry.New(CodeUnavailable)
}

func ErrNoPhoto() *errx.Error {
	return ErrRegistry.New(CodeNoPhoto)
}

func ErrInvalidImage() *errx.Error {
	return ErrRegistry.New(CodeInvalidImage)
}

func ErrTooLarge() *errx.Error {
	return ErrRegistry.New(CodeTooLarge)
}

// IsRetryable reports whether the user can fix the failure and try again
func IsRetryable(err error) bool {
	e, ok := errx.As(err)
	return ok && errx.Code(e.Code) == CodePermissionDenied
}
