package errors

import (
	"fmt"
)

// Reason narrows an ErrorCode to the specific check that failed
type Reason string

const (
	ReasonNoHeader       Reason = "no_header"
	ReasonMalformed      Reason = "malformed"
	ReasonMissingCaption Reason = "missing_caption"
	ReasonMissingURL     Reason = "missing_url"
	ReasonStore          Reason = "store"
	ReasonSigner         Reason = "signer"
)

// Client-facing messages. These strings are part of the API contract.
const (
	MsgNoAuthHeader     = "No authorization headers."
	MsgMalformedToken   = "Malformed token."
	MsgFailedToAuth     = "Failed to authenticate."
	MsgCaptionRequired  = "Caption is required or malformed."
	MsgFileURLRequired  = "File url is required."
	MsgFeedFetchFailure = "Failed to fetch feed items"
)

// APIError represents an error that is answered to the client
type APIError struct {
	Code    ErrorCode
	Reason  Reason
	Message string
	Status  int
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s(%s): %s: %v", e.Code, e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s(%s): %s", e.Code, e.Reason, e.Message)
}

// Unwrap exposes the underlying cause
func (e *APIError) Unwrap() error {
	return e.Err
}

// Body renders the JSON body the route answers with. Each family keeps the
// shape existing clients parse: {message}, {auth, message} or {error}.
func (e *APIError) Body() map[string]any {
	switch e.Code {
	case ErrAuthVerificationFailed:
		return map[string]any{"auth": false, "message": e.Message}
	case ErrUpstreamFailure:
		return map[string]any{"error": e.Message}
	default:
		return map[string]any{"message": e.Message}
	}
}

func newError(code ErrorCode, reason Reason, message string, cause error) *APIError {
	return &APIError{
		Code:    code,
		Reason:  reason,
		Message: message,
		Status:  code.StatusCode(),
		Err:     cause,
	}
}

// NoAuthHeader is returned when the request carries no Authorization header
func NoAuthHeader() *APIError {
	return newError(ErrUnauthenticated, ReasonNoHeader, MsgNoAuthHeader, nil)
}

// MalformedToken is returned when the Authorization header is not "Scheme Token"
func MalformedToken() *APIError {
	return newError(ErrUnauthenticated, ReasonMalformed, MsgMalformedToken, nil)
}

// AuthVerificationFailed is returned when the token does not verify
func AuthVerificationFailed(cause error) *APIError {
	return newError(ErrAuthVerificationFailed, "", MsgFailedToAuth, cause)
}

// MissingCaption is returned when a feed item is created without caption
func MissingCaption() *APIError {
	return newError(ErrValidation, ReasonMissingCaption, MsgCaptionRequired, nil)
}

// MissingURL is returned when a feed item is created without a media key
func MissingURL() *APIError {
	return newError(ErrValidation, ReasonMissingURL, MsgFileURLRequired, nil)
}

// FeedFetchFailed is returned when the feed listing cannot be read from the store
func FeedFetchFailed(cause error) *APIError {
	return newError(ErrUpstreamFailure, ReasonStore, MsgFeedFetchFailure, cause)
}
