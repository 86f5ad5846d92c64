// Package common defines shared constants and sentinel errors used across
// picvault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInvalidInput = errors.New("invalid input")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// External-dependency failures. Returned wrapped, with the underlying
	// cause attached for diagnostics.
	ErrUploadFailed   = errors.New("upload failed")
	ErrFetchFailed    = errors.New("fetch failed")
	ErrInvalidImage   = errors.New("invalid image")
	ErrAnalysisFailed = errors.New("analysis failed")
)
