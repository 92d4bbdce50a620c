package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	connectSecretVar    = "CONNECT_SECRET"
	forumBaseURLVar     = "FORUM_BASE_URL"
	replayTTLVar        = "CONNECT_REPLAY_TTL"
	redisAddrVar        = "REDIS_ADDR"
	redisPasswordVar    = "REDIS_PASSWORD"
	sessionSecretVar    = "SESSION_SECRET"
	oidcIssuerVar       = "OIDC_ISSUER"
	oidcClientIDVar     = "OIDC_CLIENT_ID"
	oidcClientSecretVar = "OIDC_CLIENT_SECRET"
	oidcRedirectURLVar  = "OIDC_REDIRECT_URL"

	// minSecretLength is the shortest shared secret the bridge accepts.
	// Anything shorter is implausible as an HMAC key and refused at startup.
	minSecretLength = 16
)

type ConnectConfig interface {
	GetSharedSecret() []byte
	GetForumBaseURL() *url.URL
	GetConnectName() string
	GetReplayTTL() time.Duration
	GetRedisAddr() string
	GetRedisPassword() string
	GetSessionSecret() []byte
	GetOidcIssuer() string
	GetOidcClientID() string
	GetOidcClientSecret() string
	GetOidcRedirectURL() string
}

type connectVars struct {
	connectName      string
	sharedSecret     []byte
	forumBaseURL     *url.URL
	replayTTL        time.Duration
	redisAddr        string
	redisPassword    string
	sessionSecret    []byte
	oidcIssuer       string
	oidcClientID     string
	oidcClientSecret string
	oidcRedirectURL  string
}

var _ ConnectConfig = connectVars{}

func loadConnectVars() (connectVars, error) {
	secret := os.Getenv(connectSecretVar)
	if secret == "" {
		return connectVars{}, fmt.Errorf("%s is required", connectSecretVar)
	}
	if len(secret) < minSecretLength {
		return connectVars{}, fmt.Errorf("%s must be at least %d bytes", connectSecretVar, minSecretLength)
	}

	rawForumURL := os.Getenv(forumBaseURLVar)
	if rawForumURL == "" {
		return connectVars{}, fmt.Errorf("%s is required", forumBaseURLVar)
	}
	forumURL, err := url.Parse(rawForumURL)
	if err != nil {
		return connectVars{}, fmt.Errorf("%s is not a valid URL: %w", forumBaseURLVar, err)
	}
	if !forumURL.IsAbs() || forumURL.Host == "" {
		return connectVars{}, fmt.Errorf("%s must be an absolute URL with a host", forumBaseURLVar)
	}

	replayTTL, err := getEnvDuration(replayTTLVar, 0)
	if err != nil {
		return connectVars{}, err
	}

	// The session secret signs login cookies, not connect payloads.
	// It defaults to the shared secret for single-secret deployments.
	sessionSecret := GetEnv(sessionSecretVar, secret)

	return connectVars{
		connectName:      GetEnv(appNameVar, defaultName),
		sharedSecret:     []byte(secret),
		forumBaseURL:     forumURL,
		replayTTL:        replayTTL,
		redisAddr:        os.Getenv(redisAddrVar),
		redisPassword:    os.Getenv(redisPasswordVar),
		sessionSecret:    []byte(sessionSecret),
		oidcIssuer:       os.Getenv(oidcIssuerVar),
		oidcClientID:     os.Getenv(oidcClientIDVar),
		oidcClientSecret: os.Getenv(oidcClientSecretVar),
		oidcRedirectURL:  os.Getenv(oidcRedirectURLVar),
	}, nil
}

func (c connectVars) GetSharedSecret() []byte {
	return c.sharedSecret
}

// GetForumBaseURL returns the configured forum origin. Callers must not
// mutate the returned URL.
func (c connectVars) GetForumBaseURL() *url.URL {
	return c.forumBaseURL
}

func (c connectVars) GetConnectName() string {
	return c.connectName
}

func (c connectVars) GetReplayTTL() time.Duration {
	return c.replayTTL
}

func (c connectVars) GetRedisAddr() string {
	return c.redisAddr
}

func (c connectVars) GetRedisPassword() string {
	return c.redisPassword
}

func (c connectVars) GetSessionSecret() []byte {
	return c.sessionSecret
}

func (c connectVars) GetOidcIssuer() string {
	return c.oidcIssuer
}

func (c connectVars) GetOidcClientID() string {
	return c.oidcClientID
}

func (c connectVars) GetOidcClientSecret() string {
	return c.oidcClientSecret
}

func (c connectVars) GetOidcRedirectURL() string {
	return c.oidcRedirectURL
}
