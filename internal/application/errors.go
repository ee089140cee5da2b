package application

import (
	"errors"
	"fmt"

	"github.com/ericfisherdev/prcomment/internal/domain/port/driven"
)

// ErrorKind classifies why a comment could not be posted. The CLI maps each
// kind to its own process exit code.
type ErrorKind string

const (
	ErrorKindArgument  ErrorKind = "argument"  // Bad or missing command-line input.
	ErrorKindConfig    ErrorKind = "config"    // Missing or malformed environment.
	ErrorKindAPI       ErrorKind = "api"       // GitHub answered with an unexpected status.
	ErrorKindTransport ErrorKind = "transport" // The request never produced a response.
)

// PostError is the error type returned by CommentPoster and the CLI layer.
type PostError struct {
	Kind   ErrorKind
	Status int // HTTP status for ErrorKindAPI; zero otherwise.
	Err    error
}

// NewError wraps err with the given kind.
func NewError(kind ErrorKind, err error) *PostError {
	return &PostError{Kind: kind, Err: err}
}

func (e *PostError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// classify converts a ReviewCommentWriter failure into a *PostError.
func classify(err error) *PostError {
	var postErr *PostError
	if errors.As(err, &postErr) {
		return postErr
	}

	var statusErr *driven.StatusError
	if errors.As(err, &statusErr) {
		return &PostError{Kind: ErrorKindAPI, Status: statusErr.StatusCode, Err: err}
	}

	return &PostError{Kind: ErrorKindTransport, Err: err}
}
