package application

import (
	"net/http"

	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized)
	ErrTokenMissing       = apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeTokenMissing, "authentication token missing", http.StatusUnauthorized)
	ErrTokenInvalid       = apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeTokenInvalid, "authentication token invalid", http.StatusUnauthorized)
	ErrTokenExpired       = apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeTokenExpired, "authentication token expired", http.StatusUnauthorized)
	ErrSessionRevoked     = apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeSessionRevoked, "session revoked or expired", http.StatusUnauthorized)

	ErrEmailTaken    = apperror.New(apperror.CodeConflict, apperror.BusinessCodeEmailTaken, "email already registered", http.StatusConflict)
	ErrUsernameTaken = apperror.New(apperror.CodeConflict, apperror.BusinessCodeUsernameTaken, "username already taken", http.StatusConflict)

	ErrWeakPassword    = apperror.Validation(apperror.BusinessCodeWeakPassword, "password does not meet requirements")
	ErrInvalidEmail    = apperror.Validation(apperror.BusinessCodeInvalidEmail, "invalid email address")
	ErrInvalidUsername = apperror.Validation(apperror.BusinessCodeInvalidUsername, "invalid username")
	ErrInvalidProfile  = apperror.Validation(apperror.BusinessCodeInvalidFormat, "invalid profile data")
)
