package apperrors

type ErrorCode string

// codes returned by the unobits application backend
const (
	ErrCodeEmailExists          ErrorCode = "email_exists"
	ErrCodeInvalidCredentials   ErrorCode = "invalid_credentials"
	ErrCodeNoOrgMembership      ErrorCode = "no_org_membership"
	ErrCodeOrganizationRequired ErrorCode = "organization_required"
	ErrCodeSignupFailed         ErrorCode = "signup_failed"
)

// codes generated by the website itself
const (
	ErrCodeInternalError     ErrorCode = "internal_error"
	ErrCodeInvalidRequest    ErrorCode = "invalid_request"
	ErrCodeMalformedBody     ErrorCode = "malformed_body"
	ErrCodeNetworkError      ErrorCode = "network_error"
	ErrCodeNotFound          ErrorCode = "resource_not_found"
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"
	ErrCodeRequestTooLarge   ErrorCode = "request_too_large"
	ErrCodeResponseTooLarge  ErrorCode = "response_too_large"
)
