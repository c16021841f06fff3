package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrIllegalOperation      = errors.New("illegal operation")
	ErrNoActiveMatch         = errors.New("no active match")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
