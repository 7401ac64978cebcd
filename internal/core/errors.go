package core

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/nlweb-api/internal/proto"
)

// Error codes for validation errors.
const (
	ErrCodeInvalidJSON  = "invalid_json"
	ErrCodeEmptyMessage = "empty_message"
)

var (
	// ErrUnexpectedPayload is returned when the body is valid JSON but not a chat request object.
	ErrUnexpectedPayload = errors.New("unexpected chat payload")
	// ErrMessageType is returned when the message field is present but not a string.
	ErrMessageType = errors.New("message is not a string")
)

// ValidationError wraps a code and a human-readable message that is safe to return to the caller.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validationError(code, msg string, err error) *ValidationError {
	return &ValidationError{Code: code, Message: msg, Err: err}
}

func errInvalidJSON(err error) *ValidationError {
	return validationError(ErrCodeInvalidJSON, proto.ErrMsgInvalidJSON, err)
}

func errEmptyMessage() *ValidationError {
	return validationError(ErrCodeEmptyMessage, proto.ErrMsgEmptyMessage, nil)
}
