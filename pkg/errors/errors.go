package account_errors

import (
	"errors"
)

// Common errors
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrTooLarge      = errors.New("file too large")
	ErrRateLimited   = errors.New("rate limited")
)
