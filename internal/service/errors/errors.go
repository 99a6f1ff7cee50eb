// Package errors provides custom errors for types implementing service interfaces.
package errors

import (
	"fmt"
)

type (
	// ValidationError handles malformed input errors.
	ValidationError struct {
		Msg string
	}
	// AuthenticationError handles failed identity verification errors.
	AuthenticationError struct {
		Msg string
	}
	// AuthorizationError handles ownership violation errors.
	AuthorizationError struct {
		Msg string
	}
	// NotFoundError handles errors caused by querying absent entities.
	NotFoundError struct {
		ID string
	}
	// ConflictError handles errors caused by duplicating unique entities.
	ConflictError struct {
		ID string
	}
	// InternalError handles unexpected store or processing failures.
	InternalError struct {
		Msg string
		Err error
	}
	// ServiceFoundNilStorage handles nil storage errors at service initialization.
	ServiceFoundNilStorage struct {
		Msg string
	}
	// ServiceFoundNilDependency handles nil dependency errors at service initialization.
	ServiceFoundNilDependency struct {
		Msg string
	}
)

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *AuthenticationError) Error() string {
	return e.Msg
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s was not found", e.ID)
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.ID)
}

func (e *InternalError) Error() string {
	return e.Msg
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilDependency) Error() string {
	return e.Msg
}
