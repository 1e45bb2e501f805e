package core

import "errors"

// Error codes for domain errors. There is no fatal class in this
// component; the worst outcome is a stale list, recoverable by
// re-querying participants.
const (
	ErrCodeRoomNotFound   = "room_not_found"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeUnauthorized   = "unauthorized"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrBadRequest   = errors.New("bad request")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
