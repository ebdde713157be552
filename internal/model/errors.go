package model

import "fmt"

// ErrorCategory is the fixed set of user-facing failure categories the
// verification flow maps raw gateway and transport errors into.
type ErrorCategory string

const (
	ErrUnsupportedFileType   ErrorCategory = "UnsupportedFileType"
	ErrFileTooLarge          ErrorCategory = "FileTooLarge"
	ErrFileReadFailure       ErrorCategory = "FileReadFailure"
	ErrRequestTimeout        ErrorCategory = "RequestTimeout"
	ErrMalformedDocument     ErrorCategory = "MalformedDocument"
	ErrGatewayAuthFailure    ErrorCategory = "GatewayAuthFailure"
	ErrGatewayOverloaded     ErrorCategory = "GatewayOverloaded"
	ErrNetworkFailure        ErrorCategory = "NetworkFailure"
	ErrContentSafetyRejected ErrorCategory = "ContentSafetyRejected"
	ErrUnclassified          ErrorCategory = "Unclassified"
)

// VerifyError is a categorized, user-facing verification failure. These are
// recoverable notices, never faults: the session stays usable after every
// one of them.
type VerifyError struct {
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func NewVerifyError(category ErrorCategory, message string) *VerifyError {
	return &VerifyError{Category: category, Message: message}
}

// GatewayError carries the transport facts of a failed analysis call so the
// state machine can map it into an ErrorCategory without knowing which
// provider produced it.
type GatewayError struct {
	StatusCode    int
	SafetyBlocked bool
	Err           error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway error (status %d)", e.StatusCode)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
