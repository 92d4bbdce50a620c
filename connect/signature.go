package connect

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer computes and verifies HMAC-SHA256 signatures over the exact
// bytes of a base64 payload string (not the decoded payload).
type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) Signer {
	return Signer{secret: secret}
}

// Sign returns the lower-case hex HMAC-SHA256 of the payload string.
func (s Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature and compares it in constant time.
// Malformed hex input yields false rather than an error so callers have a
// single failure path.
func (s Signer) Verify(payload, signatureHex string) bool {
	supplied, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hmac.Equal(mac.Sum(nil), supplied)
}
