package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/unobits/website/internal/apperrors"
)

// ClientError is the normalized error returned when a request to the unobits API fails.
// StatusCode 0 = network/connection error, >0 = HTTP response received
type ClientError struct {
	Message    string  `json:"message"`     // human readable, safe to show to the visitor
	Code       string  `json:"code"`        // machine readable code defined by the backend (or HTTP_<status>)
	StatusCode int     `json:"status_code"` // HTTP status of the API response
	Payload    Payload `json:"payload"`     // the parsed response body
	cause      error
}

func (e *ClientError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("unobits api: %s: %v", e.Code, e.cause)
	}
	return fmt.Sprintf("unobits api: status %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.cause
}

// AsClientError returns the ClientError in err's chain, if any
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCode reports whether err is a ClientError with the given code
func HasCode(err error, code apperrors.ErrorCode) bool {
	ce, ok := AsClientError(err)
	return ok && ce.Code == string(code)
}

// NewClientConnectionError creates a ClientError for network/connection issues (no response received from the API)
func NewClientConnectionError(err error) *ClientError {
	return &ClientError{
		Message:    "Unable to connect. Please check your internet connection and try again.",
		Code:       string(apperrors.ErrCodeNetworkError),
		StatusCode: 0,
		Payload:    Payload{},
		cause:      err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		Message:    "An error occurred. Please try again later.",
		Code:       string(apperrors.ErrCodeInternalError),
		StatusCode: 0,
		Payload:    Payload{},
		cause:      fmt.Errorf("%w while %v", err, while),
	}
}

// NewClientResponseTooLargeError creates a ClientError for API responses that exceed the size the client reads
func NewClientResponseTooLargeError(statusCode int) *ClientError {
	return &ClientError{
		Message:    "An error occurred. Please try again later.",
		Code:       string(apperrors.ErrCodeResponseTooLarge),
		StatusCode: statusCode,
		Payload:    Payload{},
		cause:      fmt.Errorf("response body exceeds %d bytes", maxResponseSize),
	}
}

// NewClientApiError creates a ClientError from a failed API response
func NewClientApiError(statusCode int, payload Payload) *ClientError {
	code := errorCode(statusCode, payload)

	return &ClientError{
		Message:    userMessage(code, payload),
		Code:       code,
		StatusCode: statusCode,
		Payload:    payload,
	}
}

// fixed messages for the codes the backend is known to return
var userMessages = map[apperrors.ErrorCode]string{
	apperrors.ErrCodeInvalidCredentials:   "Wrong email or password.",
	apperrors.ErrCodeOrganizationRequired: "Organization is required.",
	apperrors.ErrCodeNoOrgMembership:      "No membership found for that organization.",
	apperrors.ErrCodeEmailExists:          "That email is already in use.",
}

const defaultSignupFailedMessage = "Unable to create your account."

// errorCode returns the error field of the payload, or a code derived from the http status when the backend did not supply one
func errorCode(statusCode int, payload Payload) string {
	if code := payload.String("error"); code != "" {
		return code
	}
	return fmt.Sprintf("HTTP_%d", statusCode)
}

// userMessage maps a code to the message shown to the visitor.
// Unknown codes use the most descriptive text the backend sent, falling back to the code itself.
func userMessage(code string, payload Payload) string {
	if msg, ok := userMessages[apperrors.ErrorCode(code)]; ok {
		return msg
	}

	if code == string(apperrors.ErrCodeSignupFailed) {
		return firstNonEmpty(payload.String("detail"), defaultSignupFailedMessage)
	}

	return firstNonEmpty(payload.String("error_description"), payload.String("message"), code)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isSuccess reports whether the API accepted the request: a 2xx status and no error field in the body
func isSuccess(statusCode int, payload Payload) bool {
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return false
	}
	return !payload.HasError()
}
