package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyChapaWebhookSignature checks the Chapa-Signature header: Chapa signs
// the raw request body with HMAC-SHA256 using the webhook secret.
func VerifyChapaWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return strings.EqualFold(expected, signature)
}
