package errors

import "net/http"

// ErrorCode represents the type of error
type ErrorCode string

const (
	ErrUnauthenticated        ErrorCode = "UNAUTHENTICATED"
	ErrAuthVerificationFailed ErrorCode = "AUTH_VERIFICATION_FAILED"
	ErrValidation             ErrorCode = "VALIDATION_ERROR"
	ErrUpstreamFailure        ErrorCode = "UPSTREAM_FAILURE"
)

// StatusCodeMap maps ErrorCode to HTTP status code.
// Token verification failures answer 500, which existing clients rely on.
var StatusCodeMap = map[ErrorCode]int{
	ErrUnauthenticated:        http.StatusUnauthorized,
	ErrAuthVerificationFailed: http.StatusInternalServerError,
	ErrValidation:             http.StatusBadRequest,
	ErrUpstreamFailure:        http.StatusInternalServerError,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
