package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// GenerateSignedPayload generates a signed webhook payload with HMAC-SHA256 signature
// Returns the JSON payload, signature header value, timestamp, and any error
func GenerateSignedPayload(secret string, event FrameEvent) (payload []byte, signature string, timestamp int64, err error) {
	payload, err = json.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp = time.Now().Unix()
	signature = Sign(secret, timestamp, event.EventID, payload)

	return payload, signature, timestamp, nil
}

// Sign computes the signature header value for a webhook delivery.
//
// The signature covers {timestamp}.{event_id}.{json_body}, which lets
// receivers check the timestamp against replay, the event id for
// deduplication, and the payload for integrity. The header format is
// "sha256=<hex_signature>".
func Sign(secret string, timestamp int64, eventID string, body []byte) string {
	signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, eventID, string(body))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))

	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks an inbound delivery's signature header in constant
// time
func VerifySignature(secret string, timestamp int64, eventID string, body []byte, signature string) bool {
	expected := Sign(secret, timestamp, eventID, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
