package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-forum-connect/internal/apperrors"
	"github.com/jrsteele09/go-forum-connect/internal/config"
)

const testSecret = "sixteen-byte-key!"

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONNECT_SECRET", testSecret)
	t.Setenv("FORUM_BASE_URL", "https://forum.example.com")
	// Clear anything the surrounding environment may carry.
	for _, v := range []string{"PORT", "ENV", "APP_NAME", "CONNECT_REPLAY_TTL", "SESSION_SECRET", "REDIS_ADDR"} {
		t.Setenv(v, "")
	}
}

func TestNewValidConfig(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, []byte(testSecret), cfg.GetSharedSecret())
	require.Equal(t, "https://forum.example.com", cfg.GetForumBaseURL().String())
	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.Equal(t, time.Duration(0), cfg.GetReplayTTL())
}

func TestNewMissingSecret(t *testing.T) {
	t.Setenv("CONNECT_SECRET", "")
	t.Setenv("FORUM_BASE_URL", "https://forum.example.com")

	_, err := config.New()
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewShortSecret(t *testing.T) {
	t.Setenv("CONNECT_SECRET", "tooshort")
	t.Setenv("FORUM_BASE_URL", "https://forum.example.com")

	_, err := config.New()
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewForumURLValidation(t *testing.T) {
	tests := []struct {
		name     string
		forumURL string
	}{
		{name: "missing", forumURL: ""},
		{name: "unparseable", forumURL: "://forum.example.com"},
		{name: "relative", forumURL: "/forum"},
		{name: "no host", forumURL: "https://"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CONNECT_SECRET", testSecret)
			t.Setenv("FORUM_BASE_URL", tc.forumURL)

			_, err := config.New()
			require.ErrorIs(t, err, apperrors.ErrConfiguration)
		})
	}
}

func TestNewPortNormalization(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.GetPort())
}

func TestNewReplayTTL(t *testing.T) {
	setValidEnv(t)
	t.Setenv("CONNECT_REPLAY_TTL", "10m")

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, 10*time.Minute, cfg.GetReplayTTL())
}

func TestNewInvalidReplayTTLRejected(t *testing.T) {
	setValidEnv(t)
	t.Setenv("CONNECT_REPLAY_TTL", "not-a-duration")

	_, err := config.New()
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewSessionSecretDefaultsToSharedSecret(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, []byte(testSecret), cfg.GetSessionSecret())
}

func TestNewSessionSecretOverride(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SESSION_SECRET", "separate-cookie-signing-key")

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, []byte("separate-cookie-signing-key"), cfg.GetSessionSecret())
}
