package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies why an upstream lookup produced no usable answer.
type Kind string

const (
	KindTransport    Kind = "transport"
	KindStatus       Kind = "status"
	KindDecode       Kind = "decode"
	KindEmpty        Kind = "empty"
	KindMissingField Kind = "missing_field"
)

// Error is returned by every Client method that fails.
type Error struct {
	Kind       Kind
	StatusCode int    // set for KindStatus, and for later kinds once a response arrived
	Field      string // set for KindMissingField
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("upstream %s: unexpected status %d", e.Kind, e.StatusCode)
	case KindMissingField:
		return fmt.Sprintf("upstream %s: %s", e.Kind, e.Field)
	case KindEmpty:
		return fmt.Sprintf("upstream %s: no data", e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("upstream %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.Kind
	}
	return ""
}

// StatusOf returns the HTTP status attached to err, or 0.
func StatusOf(err error) int {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}
