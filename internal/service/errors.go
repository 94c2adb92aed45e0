package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrAlreadyRevoked     = fmt.Errorf("%w: token already revoked", ErrConflict)
)

// ValidationError carries a message that is safe to show to the client. It matches ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() + ": " + e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validation(msg string) error {
	return &ValidationError{Msg: msg}
}
