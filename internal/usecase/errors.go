package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDataUnavailable       = errors.New("dataset unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
