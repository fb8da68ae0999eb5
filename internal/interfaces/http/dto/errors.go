package dto

import (
	"errors"
	"net/http"

	"github.com/orderdocs/backend/internal/domain/shared"
)

// ErrCodeInternal is used for errors that carry no domain code.
const ErrCodeInternal = "ERR_INTERNAL"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	"ERR_SIGNATURE_INVALID": http.StatusUnauthorized,
	"ERR_PAYLOAD_MALFORMED": http.StatusBadRequest,
	"ERR_ORDER_INVALID":     http.StatusBadRequest,
	"ERR_RENDER_FAILED":     http.StatusInternalServerError,
	"ERR_SOURCE_FETCH":      http.StatusBadGateway,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError converts an error into its HTTP status and error response.
// Internal details of non-domain errors are not exposed to callers.
func FromError(err error) (int, ErrorResponse) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return GetHTTPStatus(domainErr.Code), NewErrorResponse(domainErr.Message)
	}
	return http.StatusInternalServerError, NewErrorResponse("Internal server error")
}
