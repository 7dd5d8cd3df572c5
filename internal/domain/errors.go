package domain

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned when a call needs a credential and the session has none.
var ErrMissingToken = errors.New("token tidak ditemukan")

// UnauthenticatedError means the session carries no usable credential.
type UnauthenticatedError struct {
	Reason string
	Err    error
}

func (e UnauthenticatedError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unauthenticated"
}

func (e UnauthenticatedError) Unwrap() error { return e.Err }

// UpstreamError wraps a failed call to the booking API or the APK host.
// Status is zero when the request never got a response.
type UpstreamError struct {
	Op         string
	Status     int
	StatusText string
	Err        error
}

func (e UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: upstream status %d: %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: upstream status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": upstream error"
	}
}

func (e UpstreamError) Unwrap() error { return e.Err }

// EmptyPayloadError is returned when a downloaded binary has zero length.
type EmptyPayloadError struct {
	Resource string
}

func (e EmptyPayloadError) Error() string {
	if e.Resource == "" {
		return "payload kosong"
	}
	return fmt.Sprintf("%s is empty", e.Resource)
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUnauthenticated(err error) bool {
	var target UnauthenticatedError
	return errors.As(err, &target)
}

func IsEmptyPayload(err error) bool {
	var target EmptyPayloadError
	return errors.As(err, &target)
}

// AsUpstream returns the UpstreamError in err's chain, if any.
func AsUpstream(err error) (UpstreamError, bool) {
	var target UpstreamError
	ok := errors.As(err, &target)
	return target, ok
}
