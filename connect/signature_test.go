package connect_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-forum-connect/connect"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signer := connect.NewSigner([]byte("topsecret"))

	payloads := []string{
		"",
		"bm9uY2U9YWJjMTIz",
		"arbitrary-not-even-base64 bytes ~!@#",
	}
	for _, payload := range payloads {
		sig := signer.Sign(payload)
		require.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), sig)
		require.True(t, signer.Verify(payload, sig))
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	signer := connect.NewSigner([]byte("topsecret"))

	payload := "bm9uY2U9YWJjMTIz"
	sig := signer.Sign(payload)

	// Flipping any single hex character must break verification.
	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		if flipped[i] == 'a' {
			flipped[i] = 'b'
		} else {
			flipped[i] = 'a'
		}
		require.False(t, signer.Verify(payload, string(flipped)), "position %d", i)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	signer := connect.NewSigner([]byte("topsecret"))

	payload := "bm9uY2U9YWJjMTIz"
	sig := signer.Sign(payload)

	for i := 0; i < len(payload); i++ {
		tampered := []byte(payload)
		tampered[i] ^= 0x01
		require.False(t, signer.Verify(string(tampered), sig), "position %d", i)
	}
}

func TestVerifyMalformedHexReturnsFalse(t *testing.T) {
	signer := connect.NewSigner([]byte("topsecret"))

	payload := "bm9uY2U9YWJjMTIz"
	for _, sig := range []string{"", "zz", "abc", "not-hex-at-all!"} {
		require.False(t, signer.Verify(payload, sig))
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	payload := "bm9uY2U9YWJjMTIz"
	sig := connect.NewSigner([]byte("topsecret")).Sign(payload)
	require.False(t, connect.NewSigner([]byte("othersecret")).Verify(payload, sig))
}
