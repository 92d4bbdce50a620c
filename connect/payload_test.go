package connect_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-forum-connect/connect"
)

func TestPayloadRoundTrip(t *testing.T) {
	codec := connect.Codec{}

	tests := []struct {
		name  string
		pairs connect.Pairs
	}{
		{
			name: "simple pairs",
			pairs: connect.Pairs{
				{Key: "nonce", Value: "abc123"},
				{Key: "return_sso_url", Value: "https://forum.example.com/session/sso_login"},
			},
		},
		{
			name: "values needing escaping",
			pairs: connect.Pairs{
				{Key: "email", Value: "a@b.com"},
				{Key: "name", Value: "Alice & Bob = friends"},
				{Key: "note", Value: "100% sure?"},
			},
		},
		{
			name: "empty value and duplicate keys",
			pairs: connect.Pairs{
				{Key: "groups", Value: ""},
				{Key: "tag", Value: "one"},
				{Key: "tag", Value: "two"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := codec.Decode(codec.Encode(tc.pairs))
			require.NoError(t, err)
			require.Equal(t, tc.pairs, decoded)
		})
	}
}

func TestDecodeOrderPreserved(t *testing.T) {
	codec := connect.Codec{}

	pairs := connect.Pairs{
		{Key: "z", Value: "1"},
		{Key: "a", Value: "2"},
		{Key: "m", Value: "3"},
	}
	decoded, err := codec.Decode(codec.Encode(pairs))
	require.NoError(t, err)
	require.Equal(t, pairs, decoded)
}

func TestDecodeFailures(t *testing.T) {
	codec := connect.Codec{}

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "invalid base64", encoded: "not!!!base64"},
		{name: "invalid percent encoding in value", encoded: base64.StdEncoding.EncodeToString([]byte("a=%zz"))},
		{name: "invalid percent encoding in key", encoded: base64.StdEncoding.EncodeToString([]byte("%gg=1"))},
		{name: "semicolon separator", encoded: base64.StdEncoding.EncodeToString([]byte("a=1;b=2"))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.encoded)
			require.ErrorIs(t, err, connect.ErrMalformedPayload)
		})
	}
}

func TestPairsGetAndHas(t *testing.T) {
	pairs := connect.Pairs{
		{Key: "nonce", Value: "n1"},
		{Key: "nonce", Value: "n2"},
	}
	require.Equal(t, "n1", pairs.Get("nonce"))
	require.True(t, pairs.Has("nonce"))
	require.False(t, pairs.Has("missing"))
	require.Equal(t, "", pairs.Get("missing"))
}
