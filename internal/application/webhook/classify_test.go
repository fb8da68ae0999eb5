package webhook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdocs/backend/internal/domain/shared"
)

func TestClassifyOrder(t *testing.T) {
	payload, err := Classify([]byte(`{"id": 7731, "total": "125000", "line_items": [{"name": "کتاب", "quantity": 2}]}`))
	require.NoError(t, err)

	assert.Equal(t, PayloadOrder, payload.Kind)
	require.NotNil(t, payload.Order)
	assert.Equal(t, int64(7731), payload.Order.ID)
	assert.Equal(t, "125000", payload.Order.Total)
}

func TestClassifyJSONPing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "numeric webhook id", body: `{"webhook_id": 12}`, want: "12"},
		{name: "string webhook id", body: `{"webhook_id": "12"}`, want: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Classify([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, PayloadPing, payload.Kind)
			assert.Equal(t, tt.want, payload.WebhookID)
			assert.Nil(t, payload.Order)
		})
	}
}

func TestClassifyOrderIDBeatsPingMarker(t *testing.T) {
	payload, err := Classify([]byte(`{"webhook_id": 12, "id": 7731}`))
	require.NoError(t, err)

	assert.Equal(t, PayloadOrder, payload.Kind)
	require.NotNil(t, payload.Order)
	assert.Equal(t, int64(7731), payload.Order.ID)
}

func TestClassifyFormPing(t *testing.T) {
	payload, err := Classify([]byte("webhook_id=12"))
	require.NoError(t, err)
	assert.Equal(t, PayloadPing, payload.Kind)
	assert.Equal(t, "12", payload.WebhookID)
}

func TestClassifyOrderWithoutID(t *testing.T) {
	// JSON object without marker or id is an order event; validation
	// downstream rejects it
	payload, err := Classify([]byte(`{"total": "125000"}`))
	require.NoError(t, err)
	assert.Equal(t, PayloadOrder, payload.Kind)
	assert.Error(t, payload.Order.Validate())
}

func TestClassifyMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "whitespace only", body: "   "},
		{name: "broken JSON", body: `{"id": 77`},
		{name: "JSON array", body: `[1, 2]`},
		{name: "form without marker", body: "foo=bar"},
		{name: "random text", body: "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify([]byte(tt.body))
			assert.True(t, errors.Is(err, shared.ErrPayloadMalformed))
		})
	}
}
