package auth

import (
	"net/http"

	"github.com/Abraxas-365/hirely/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid email or password")
	CodeEmailTaken         = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "Email is already registered")
	CodeInvalidSignUp      = ErrRegistry.Register("INVALID_SIGN_UP", errx.TypeValidation, http.StatusBadRequest, "Invalid sign up request")
	CodeUserNotFound       = ErrRegistry.Register("USER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeSessionRevoked     = ErrRegistry.Register("SESSION_REVOKED", errx.TypeAuthorization, http.StatusUnauthorized, "Session has been signed out")
	CodeMissingToken       = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Authorization header is required")
	CodeForbidden          = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrInvalidCredentials() *errx.Error { return ErrRegistry.New(CodeInvalidCredentials) }
func ErrEmailTaken() *errx.Error         { return ErrRegistry.New(CodeEmailTaken) }
func ErrInvalidSignUp() *errx.Error      { return ErrRegistry.New(CodeInvalidSignUp) }
func ErrUserNotFound() *errx.Error       { return ErrRegistry.New(CodeUserNotFound) }
func ErrInvalidToken() *errx.Error       { return ErrRegistry.New(CodeInvalidToken) }
func ErrSessionRevoked() *errx.Error     { return ErrRegistry.New(CodeSessionRevoked) }
func ErrMissingToken() *errx.Error       { return ErrRegistry.New(CodeMissingToken) }
func ErrForbidden() *errx.Error          { return ErrRegistry.New(CodeForbidden) }
