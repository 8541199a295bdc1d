package transport

import "errors"

var (
	// ErrAckTimeout is returned when no matching acknowledgement arrives
	// within AckAttempts receptions.
	ErrAckTimeout = errors.New("no acknowledgement received")
)

// IsTimeout reports whether err is a receive that ended without a frame.
// Drivers mark such errors with a Timeout() bool method.
func IsTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
