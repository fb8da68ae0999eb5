// Package dto defines the wire format of the HTTP API.
package dto

import "fmt"

// WebhookAck is the body returned when a delivery is accepted.
// Ping acknowledgements carry no path.
type WebhookAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// ErrorResponse is the body returned on any failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewDeliveredAck builds the acknowledgement for a generated document.
func NewDeliveredAck(orderID int64, path string) WebhookAck {
	return WebhookAck{
		Status:  "success",
		Message: fmt.Sprintf("PDF generated for order %d", orderID),
		Path:    path,
	}
}

// NewPingAck builds the acknowledgement for a webhook handshake.
func NewPingAck() WebhookAck {
	return WebhookAck{
		Status:  "ping",
		Message: "Webhook ping acknowledged",
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
