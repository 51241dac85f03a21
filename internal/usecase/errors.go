package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidState means a lifecycle action was attempted from the wrong
	// job status, including losing a race to a concurrent actor.
	ErrInvalidState = errors.New("invalid job state")
	ErrInternal     = errors.New("internal error")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
