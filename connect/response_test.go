package connect_test

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-forum-connect/connect"
)

func parseRedirect(t *testing.T, redirect string) (sso, sig string, parsed *url.URL) {
	t.Helper()
	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	query := parsed.Query()
	return query.Get("sso"), query.Get("sig"), parsed
}

func TestBuildSignedRedirect(t *testing.T) {
	builder := connect.NewResponseBuilder([]byte("topsecret"))
	returnURL, err := url.Parse("https://forum.example.com/session/sso_login")
	require.NoError(t, err)

	identity := connect.Identity{
		ExternalID: "42",
		Email:      "a@b.com",
		Username:   "alice",
		Name:       "Alice",
	}

	sso, sig, parsed := parseRedirect(t, builder.Build("abc123", identity, returnURL))
	require.Equal(t, "forum.example.com", parsed.Host)
	require.Equal(t, "/session/sso_login", parsed.Path)

	raw, err := base64.StdEncoding.DecodeString(sso)
	require.NoError(t, err)
	require.Equal(t,
		"nonce=abc123&external_id=42&email=a%40b.com&username=alice&name=Alice&admin=false&moderator=false",
		string(raw))

	require.True(t, connect.NewSigner([]byte("topsecret")).Verify(sso, sig))
}

func TestBuildDeterministic(t *testing.T) {
	builder := connect.NewResponseBuilder([]byte("topsecret"))
	returnURL, err := url.Parse("https://forum.example.com/session/sso_login")
	require.NoError(t, err)

	identity := connect.Identity{
		ExternalID: "42",
		Email:      "a@b.com",
		Username:   "alice",
		Name:       "Alice",
		CustomFields: map[string]string{
			"zeta":  "z",
			"alpha": "a",
			"mid":   "m",
		},
	}

	first := builder.Build("abc123", identity, returnURL)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, builder.Build("abc123", identity, returnURL))
	}
}

func TestBuildOptionalFields(t *testing.T) {
	builder := connect.NewResponseBuilder([]byte("topsecret"))
	returnURL, err := url.Parse("https://forum.example.com/session/sso_login")
	require.NoError(t, err)

	identity := connect.Identity{
		ExternalID: "7",
		Email:      "mod@b.com",
		Username:   "mod",
		Name:       "Mod",
		Moderator:  true,
		AvatarURL:  "https://cdn.example.com/mod.png",
		CustomFields: map[string]string{
			"team":   "trust-safety",
			"office": "remote",
		},
	}

	sso, _, _ := parseRedirect(t, builder.Build("n-1", identity, returnURL))

	pairs, err := (connect.Codec{}).Decode(sso)
	require.NoError(t, err)
	require.Equal(t, connect.Pairs{
		{Key: "nonce", Value: "n-1"},
		{Key: "external_id", Value: "7"},
		{Key: "email", Value: "mod@b.com"},
		{Key: "username", Value: "mod"},
		{Key: "name", Value: "Mod"},
		{Key: "admin", Value: "false"},
		{Key: "moderator", Value: "true"},
		{Key: "avatar_url", Value: "https://cdn.example.com/mod.png"},
		{Key: "custom.office", Value: "remote"},
		{Key: "custom.team", Value: "trust-safety"},
	}, pairs)
}

// The nonce comes back byte for byte, whatever the forum chose to send.
func TestBuildEchoesNonceVerbatim(t *testing.T) {
	builder := connect.NewResponseBuilder([]byte("topsecret"))
	returnURL, err := url.Parse("https://forum.example.com/session/sso_login")
	require.NoError(t, err)

	identity := connect.Identity{ExternalID: "42", Email: "a@b.com", Username: "alice", Name: "Alice"}

	for _, nonce := range []string{"abc123", "  spaced  ", "with=equals&amp", "ünïcode"} {
		sso, _, _ := parseRedirect(t, builder.Build(nonce, identity, returnURL))
		pairs, err := (connect.Codec{}).Decode(sso)
		require.NoError(t, err)
		require.Equal(t, nonce, pairs.Get("nonce"))
	}
}

func TestBuildPreservesReturnURLQuery(t *testing.T) {
	builder := connect.NewResponseBuilder([]byte("topsecret"))
	returnURL, err := url.Parse("https://forum.example.com/session/sso_login?foo=bar")
	require.NoError(t, err)

	identity := connect.Identity{ExternalID: "42", Email: "a@b.com", Username: "alice", Name: "Alice"}

	_, _, parsed := parseRedirect(t, builder.Build("abc123", identity, returnURL))
	require.Equal(t, "bar", parsed.Query().Get("foo"))
	// The caller's URL value is not mutated.
	require.Equal(t, "foo=bar", returnURL.RawQuery)
}
