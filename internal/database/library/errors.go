package library

import "errors"

var ErrNotFound = errors.New("record not found")

// ValidationError rejects a write whose fields do not make a valid record.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InUseError rejects a delete while other records still reference the target.
type InUseError struct {
	Message string
}

func (e *InUseError) Error() string { return e.Message }
