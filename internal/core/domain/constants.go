package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrNotConfigured      = errors.New("not configured")
	ErrForbidden          = errors.New("admin only")
	ErrNotFound           = errors.New("not found")
	ErrProviderRejected   = errors.New("provider rejected request")
	ErrEmptyResponse      = errors.New("empty response")
)

// StatusError is returned by outbound HTTP calls answered with a non-2xx status.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Reason)
}

// Reason returns the text shown to users for a failed outbound call: the HTTP reason phrase
// when the remote answered, the error itself otherwise.
func Reason(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Reason
	}

	return err.Error()
}
