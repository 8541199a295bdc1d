package nrf

import "errors"

var (
	ErrFrameTooLong = errors.New("frame does not fit the packet buffer")

	// ErrPollLimit reports Timeout() == true: the wait ran out, the radio
	// was disabled and the call may be retried.
	ErrPollLimit error = timeoutError("radio did not reach the expected state")
)

type timeoutError string

func (e timeoutError) Error() string { return string(e) }
func (e timeoutError) Timeout() bool { return true }
