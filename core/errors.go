package core

import (
	"errors"
	"fmt"
)

// NotFoundError reports the expected absence of translog data. It is an
// informational outcome, not a failure: shards without a translog are
// legitimate.
type NotFoundError struct {
	Reason string // e.g. "no primary term directories"
	Path   string // The path that was inspected
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s (path %s)", e.Reason, e.Path)
}

// DecodeError reports a checkpoint file that exists but does not match the
// fixed layout. Unlike NotFoundError it indicates real corruption.
type DecodeError struct {
	Path    string
	Message string
	Err     error // underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode error for %s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("decode error for %s: %s", e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundError *NotFoundError
	// Use errors.As to check if the error (or any error in its chain) is a NotFoundError.
	return errors.As(err, &notFoundError)
}

// IsDecodeError checks if an error is a DecodeError.
func IsDecodeError(err error) bool {
	var decodeError *DecodeError
	return errors.As(err, &decodeError)
}
