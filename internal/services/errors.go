package services

import (
	"errors"

	"fitlog/internal/validation"
)

// Authentication failures. Each one is reported as 401 with its own message.
var (
	ErrInvalidCredentials = errors.New("invalid email/username or password")
	ErrTokenMissing       = errors.New("authentication credentials were not provided")
	ErrTokenMalformed     = errors.New("invalid authorization header format")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
)

// ConflictError reports a write rejected by a storage-level unique constraint.
type ConflictError struct {
	Fields validation.Errors
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Fields.Error()
}

func newConflict(field, msg string) *ConflictError {
	fields := validation.Errors{}
	fields.Add(field, msg)
	return &ConflictError{Fields: fields}
}
