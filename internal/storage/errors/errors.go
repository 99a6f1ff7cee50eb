// Package errors provides custom errors for types implementing KVStorage interfaces.
package errors

import (
	"fmt"
)

type (
	// NotFoundError handles errors caused by querying absent keys.
	NotFoundError struct {
		Err error
		Key string
	}
	// ContextTimeoutExceededError handles errors caused by exceeding context deadlines.
	ContextTimeoutExceededError struct {
		Err error
	}
	// FileWriteError handles errors caused by file storage write operations.
	FileWriteError struct {
		Err error
	}
	// StatementPSQLError handles errors caused by PSQL statement processing.
	StatementPSQLError struct {
		Err error
		Msg string
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in storage", e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *ContextTimeoutExceededError) Error() string {
	return "context timeout exceeded"
}

func (e *ContextTimeoutExceededError) Unwrap() error {
	return e.Err
}

func (e *FileWriteError) Error() string {
	return "could not write to file storage"
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}

func (e *StatementPSQLError) Error() string {
	return fmt.Sprintf("%s could not be processed", e.Msg)
}

func (e *StatementPSQLError) Unwrap() error {
	return e.Err
}
