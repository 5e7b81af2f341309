package delivery

import "errors"

// Dispatcher errors.
var (
	// ErrNotConfigured indicates no delivery transport is set up.
	ErrNotConfigured = errors.New("delivery not configured")
	// ErrInvalidMessage indicates the message failed parameter validation.
	ErrInvalidMessage = errors.New("invalid delivery message")
	// ErrSendFailed indicates the transport rejected or failed the send.
	ErrSendFailed = errors.New("delivery send failed")
)
