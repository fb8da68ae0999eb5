// Package webhook verifies, classifies, and processes WooCommerce
// webhook deliveries.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/orderdocs/backend/internal/domain/shared"
)

// ComputeSignature returns the base64-encoded HMAC-SHA256 of the raw
// request body, the scheme WooCommerce uses for the
// X-WC-Webhook-Signature header.
func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the delivery signature against the raw body.
// Verification is skipped when no secret is configured. The comparison
// is constant-time so the check leaks no timing information.
func VerifySignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return nil
	}

	expected := ComputeSignature(secret, body)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return shared.ErrSignatureInvalid
	}
	return nil
}
