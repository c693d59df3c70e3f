package api

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an id unknown to the backend.
var ErrNotFound = errors.New("not found")

// RejectedError is a business-rule decline, e.g. enrolling into a full
// session. Reason carries the backend-supplied human-readable detail and
// must be surfaced verbatim.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// IsRejected reports whether err is a backend decline and returns its
// reason text.
func IsRejected(err error) (string, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}

func statusError(status int, detail string) error {
	switch {
	case status == 404:
		return ErrNotFound
	case status == 409 || status == 400 || status == 422:
		if detail == "" {
			detail = fmt.Sprintf("request rejected (status %d)", status)
		}
		return &RejectedError{Reason: detail}
	default:
		return fmt.Errorf("backend error: status %d", status)
	}
}
