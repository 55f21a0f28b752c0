package main

import (
	"errors"
	"fmt"

	"seleniumguide/export"
)

var (
	// ErrSectionNotFound means the requested section id has no catalog entry.
	// The export is aborted before any generator runs.
	ErrSectionNotFound = errors.New("section not found")
	// ErrGenerateFailed wraps any failure inside a document library.
	ErrGenerateFailed = errors.New("document generation failed")
	// ErrUnsupportedFormat is re-exported for handlers.
	ErrUnsupportedFormat = export.ErrUnsupportedFormat
)

// ServiceError is the common error type of the services
type ServiceError struct {
	Service   string // service name
	Operation string // operation name
	Err       error  // underlying error
}

// Error formats as [Service.Operation] error message
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap exposes the underlying error to errors.Is/errors.As
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError adds service context to err. A nil err stays nil.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
