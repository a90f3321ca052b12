package models

import (
	"errors"
	"fmt"
)

// ErrorCode classifies business errors so handlers can map them to HTTP statuses.
type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "not_found"
	ErrCodeConflict        ErrorCode = "conflict"
	ErrCodeExpired         ErrorCode = "expired"
	ErrCodeInvalidInterval ErrorCode = "invalid_interval"
	ErrCodeInvalidSchedule ErrorCode = "invalid_schedule"
	ErrCodeValidation      ErrorCode = "validation"
)

// ServiceError is a business error with a stable code. Infra failures are
// returned as plain errors and must not be wrapped in a ServiceError.
type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(msg string) error {
	return &ServiceError{Code: ErrCodeNotFound, Message: msg}
}

func NewConflict(msg string) error {
	return &ServiceError{Code: ErrCodeConflict, Message: msg}
}

func NewExpired(msg string) error {
	return &ServiceError{Code: ErrCodeExpired, Message: msg}
}

func NewInvalidInterval(msg string) error {
	return &ServiceError{Code: ErrCodeInvalidInterval, Message: msg}
}

func NewInvalidSchedule(msg string) error {
	return &ServiceError{Code: ErrCodeInvalidSchedule, Message: msg}
}

func NewValidation(msg string) error {
	return &ServiceError{Code: ErrCodeValidation, Message: msg}
}

// CodeOf returns the error code of a ServiceError, or "" for infra errors.
func CodeOf(err error) ErrorCode {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
