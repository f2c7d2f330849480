// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// Internal hides cause behind ErrInternal. The cause stays reachable through
// errors.Unwrap so that it can still be logged.
func Internal(cause error) error {
	return &internalError{cause: cause}
}

type internalError struct {
	cause error
}

func (e *internalError) Error() string {
	return ErrInternal.Error()
}

func (e *internalError) Is(target error) bool {
	return target == ErrInternal
}

func (e *internalError) Unwrap() error {
	return e.cause
}
