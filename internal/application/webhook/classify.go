package webhook

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/orderdocs/backend/internal/domain/order"
	"github.com/orderdocs/backend/internal/domain/shared"
)

// PayloadKind discriminates webhook payload variants.
type PayloadKind int

const (
	// PayloadMalformed is a body that is neither JSON nor a ping form.
	PayloadMalformed PayloadKind = iota
	// PayloadPing is a delivery handshake carrying a webhook_id.
	PayloadPing
	// PayloadOrder is an order event.
	PayloadOrder
)

// pingMarkerField identifies handshake deliveries in both JSON and
// form-encoded bodies.
const pingMarkerField = "webhook_id"

// Payload is a classified webhook body.
type Payload struct {
	Kind      PayloadKind
	WebhookID string
	Order     *order.Order
}

// Classify inspects a raw webhook body and determines its variant.
// JSON objects carrying the ping marker and no order id are
// handshakes; any JSON object with an order id is an order event.
// Non-JSON bodies are retried as form-encoded handshakes, which is how
// WooCommerce delivers the initial webhook activation ping. Everything
// else is malformed.
func Classify(body []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, shared.ErrPayloadMalformed
	}

	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, shared.ErrPayloadMalformed.WithCause(err)
		}

		if raw, ok := probe[pingMarkerField]; ok {
			if _, hasID := probe["id"]; !hasID {
				return &Payload{Kind: PayloadPing, WebhookID: rawToString(raw)}, nil
			}
		}

		var ord order.Order
		if err := json.Unmarshal(trimmed, &ord); err != nil {
			return nil, shared.ErrPayloadMalformed.WithCause(err)
		}
		return &Payload{Kind: PayloadOrder, Order: &ord}, nil
	}

	values, err := url.ParseQuery(string(trimmed))
	if err == nil {
		if id := values.Get(pingMarkerField); id != "" {
			return &Payload{Kind: PayloadPing, WebhookID: id}, nil
		}
	}
	return nil, shared.ErrPayloadMalformed
}

// rawToString renders a JSON scalar without its surrounding quotes.
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
