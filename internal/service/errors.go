package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrMobileExists       = errors.New("mobile already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrAmountMismatch     = errors.New("amount mismatch")
	ErrImageRequired      = errors.New("image is required")
)

// ValidationError описывает ошибку конкретного поля. errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }
