package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Is matches DomainErrors by code, so errors.Is works across WithCause copies
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Unwrap returns the underlying error, if any
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error carrying the underlying cause
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrSignatureInvalid = NewDomainError("ERR_SIGNATURE_INVALID", "Webhook signature verification failed")
	ErrPayloadMalformed = NewDomainError("ERR_PAYLOAD_MALFORMED", "Payload could not be parsed as JSON or form data")
	ErrOrderInvalid     = NewDomainError("ERR_ORDER_INVALID", "Order payload has no identifier")
	ErrRenderFailed     = NewDomainError("ERR_RENDER_FAILED", "Document rendering failed")
	ErrSourceFetch      = NewDomainError("ERR_SOURCE_FETCH", "Order source listing failed")
)
