package square

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader carries the webhook signature.
const SignatureHeader = "x-square-hmacsha256-signature"

// VerifyWebhookSignature checks signature against HMAC-SHA256(key, notificationURL+body),
// base64 encoded, as Square signs webhook deliveries.
func VerifyWebhookSignature(key, notificationURL string, body []byte, signature string) bool {
	if key == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(ComputeWebhookSignature(key, notificationURL, body)), []byte(signature))
}

func ComputeWebhookSignature(key, notificationURL string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(notificationURL))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
