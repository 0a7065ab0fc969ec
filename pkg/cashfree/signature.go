package cashfree

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

const (
	HeaderSignature = "x-webhook-signature"
	HeaderTimestamp = "x-webhook-timestamp"
)

var ErrInvalidSignature = errors.New("cashfree: invalid webhook signature")

// Sign returns base64(HMAC-SHA256(timestamp + body, secret)).
func Sign(timestamp string, body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func VerifySignature(timestamp string, body []byte, signature, secret string) error {
	if signature == "" || timestamp == "" {
		return ErrInvalidSignature
	}
	if !hmac.Equal([]byte(Sign(timestamp, body, secret)), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
