package webhook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderdocs/backend/internal/domain/shared"
)

const (
	testSecret = "wc-webhook-secret"
	testBody   = `{"id":7731,"total":"125000"}`
	// HMAC-SHA256 of testBody under testSecret, base64-encoded
	testSignature = "wM4FQG1ue0injA4OyWFIr3AZM+A6G8p0sQio5zLDPIg="
)

func TestComputeSignature(t *testing.T) {
	assert.Equal(t, testSignature, ComputeSignature(testSecret, []byte(testBody)))

	// a one-character body change produces an unrelated signature
	other := ComputeSignature(testSecret, []byte(`{"id":7731,"total":"125001"}`))
	assert.Equal(t, "JY8+XcUwHLGGeK6cxHse9swnfQjARQ3/QSxJnvq0//s=", other)
	assert.NotEqual(t, testSignature, other)
}

func TestVerifySignature(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		body      string
		signature string
		wantErr   bool
	}{
		{name: "valid signature", secret: testSecret, body: testBody, signature: testSignature},
		{name: "wrong signature", secret: testSecret, body: testBody, signature: "AAAA", wantErr: true},
		{name: "empty signature", secret: testSecret, body: testBody, signature: "", wantErr: true},
		{name: "tampered body", secret: testSecret, body: testBody + " ", signature: testSignature, wantErr: true},
		{name: "wrong secret", secret: "other-secret", body: testBody, signature: testSignature, wantErr: true},
		{name: "no secret skips verification", secret: "", body: testBody, signature: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.secret, []byte(tt.body), tt.signature)
			if tt.wantErr {
				assert.True(t, errors.Is(err, shared.ErrSignatureInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
