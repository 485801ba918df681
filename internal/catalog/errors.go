package catalog

import (
	"errors"
	"fmt"
)

// ErrNoFormOptions is returned by FetchFormOptions for resources whose forms
// have no reference fields.
var ErrNoFormOptions = errors.New("resource has no form options endpoint")

// NetworkError covers transport failures and responses that are not JSON.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-success HTTP status. Message holds the server's own
// explanation when the body carried one under "message" or "error".
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("catalog server returned HTTP %d", e.StatusCode)
}

// EmptyResultError means a successful list response lacked its collection key.
type EmptyResultError struct {
	Key string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("response has no %q collection", e.Key)
}

// ReferenceRequiredError rejects a submission locally because a mandatory
// reference field was left empty.
type ReferenceRequiredError struct {
	Field   string
	Message string
}

func (e *ReferenceRequiredError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Field + " is required"
}

// UserMessage picks the text shown to the user for err: the server's message
// when it sent one, the local validation message, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	var refErr *ReferenceRequiredError
	if errors.As(err, &refErr) {
		return refErr.Error()
	}
	return fallback
}
