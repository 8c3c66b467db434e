package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrNotConfigured  = errors.New("notifier not configured")
	ErrInvalidMessage = errors.New("invalid message")
	ErrDeliveryFailed = errors.New("delivery failed")
)

// NotifyError represents a failed delivery with additional context
type NotifyError struct {
	Op        string
	ContactID int64
	Err       error
	Retryable bool
}

func (e *NotifyError) Error() string {
	if e.ContactID != 0 {
		return fmt.Sprintf("notify %s failed for contact %d: %v", e.Op, e.ContactID, e.Err)
	}
	return fmt.Sprintf("notify %s failed: %v", e.Op, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

// NewNotifyError creates a new NotifyError
func NewNotifyError(op string, contactID int64, err error, retryable bool) *NotifyError {
	return &NotifyError{
		Op:        op,
		ContactID: contactID,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable returns true if the error indicates a transient condition
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var notifyErr *NotifyError
	if errors.As(err, &notifyErr) {
		return notifyErr.Retryable
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
