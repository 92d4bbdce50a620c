// Package oidcsession is the production SessionProvider: identity comes
// from an upstream OpenID Connect provider and is carried between
// requests in a signed session cookie. The connect flow stays decoupled
// from it through the users.SessionProvider interface.
package oidcsession

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-forum-connect/users"
)

// stateTimeout bounds how long a login attempt may sit between the
// redirect to the IdP and the callback.
const stateTimeout = 10 * time.Minute

// Config holds everything the provider needs. The OIDC fields are
// optional: without them the provider still resolves and revokes existing
// session cookies, it just cannot start new logins.
type Config struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string

	SessionSecret []byte
	CookieName    string
	SessionTTL    time.Duration
	SecureCookies bool
}

type loginState struct {
	nonce     string
	returnTo  string
	createdAt time.Time
}

var _ users.SessionProvider = (*Provider)(nil)

// Provider implements users.SessionProvider on top of an OIDC
// authorization-code flow and an HS256 session cookie.
type Provider struct {
	cookieName    string
	sessionSecret []byte
	sessionTTL    time.Duration
	secureCookies bool
	nowTime       func() time.Time // injectable for testing

	oidcProvider *oidc.Provider
	oauthConfig  *oauth2.Config
	verifier     *oidc.IDTokenVerifier

	lock    sync.Mutex
	states  map[string]loginState
	revoked map[string]time.Time
}

// ProviderOption defines a function type to modify the Provider instance.
type ProviderOption func(*Provider)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ProviderOption {
	return func(p *Provider) {
		p.nowTime = nowFunc
	}
}

// New creates the provider. When cfg.Issuer is set the OIDC discovery
// document is fetched eagerly so misconfiguration fails at startup, not
// on the first login.
func New(ctx context.Context, cfg Config, options ...ProviderOption) (*Provider, error) {
	if len(cfg.SessionSecret) == 0 {
		return nil, errors.New("[oidcsession.New] session secret is required")
	}

	p := &Provider{
		cookieName:    cfg.CookieName,
		sessionSecret: cfg.SessionSecret,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
		nowTime:       time.Now,
		states:        make(map[string]loginState),
		revoked:       make(map[string]time.Time),
	}
	if p.cookieName == "" {
		p.cookieName = defaultCookieName
	}
	if p.sessionTTL <= 0 {
		p.sessionTTL = defaultSessionTTL
	}
	for _, opt := range options {
		opt(p)
	}

	if cfg.Issuer != "" {
		oidcProvider, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return nil, errors.Wrap(err, "[oidcsession.New] OIDC discovery")
		}
		p.oidcProvider = oidcProvider
		p.oauthConfig = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		}
		p.verifier = oidcProvider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
	}

	return p, nil
}

// IdPConfigured reports whether the provider can start new logins.
func (p *Provider) IdPConfigured() bool {
	return p.oauthConfig != nil
}

// LoginURL starts an authorization-code flow and returns the IdP URL to
// redirect the visitor to. returnTo is replayed to the caller by
// HandleCallback once the flow completes.
func (p *Provider) LoginURL(returnTo string) (string, error) {
	if !p.IdPConfigured() {
		return "", errors.Wrap(users.ErrNoLoginFlow, "[Provider.LoginURL] no IdP configured")
	}

	state := uuid.New().String()
	nonce := uuid.New().String()

	p.lock.Lock()
	now := p.nowTime()
	for key, st := range p.states {
		if now.Sub(st.createdAt) > stateTimeout {
			delete(p.states, key)
		}
	}
	p.states[state] = loginState{nonce: nonce, returnTo: returnTo, createdAt: now}
	p.lock.Unlock()

	return p.oauthConfig.AuthCodeURL(state, oidc.Nonce(nonce)), nil
}

// HandleCallback completes the code flow: validates state, exchanges the
// code, verifies the ID token (signature and nonce), and issues the
// session cookie. It returns the returnTo value captured by LoginURL.
func (p *Provider) HandleCallback(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	if !p.IdPConfigured() {
		return "", errors.Wrap(users.ErrNoLoginFlow, "[Provider.HandleCallback] no IdP configured")
	}

	state := r.FormValue("state")
	code := r.FormValue("code")
	if state == "" || code == "" {
		return "", errors.New("[Provider.HandleCallback] missing code or state parameter")
	}

	p.lock.Lock()
	pending, ok := p.states[state]
	delete(p.states, state)
	p.lock.Unlock()
	if !ok || p.nowTime().Sub(pending.createdAt) > stateTimeout {
		return "", errors.New("[Provider.HandleCallback] unknown or expired state")
	}

	oauth2Token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "[Provider.HandleCallback] code exchange")
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return "", errors.New("[Provider.HandleCallback] no ID token in response")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", errors.Wrap(err, "[Provider.HandleCallback] ID token verification")
	}

	var claims struct {
		Nonce         string `json:"nonce"`
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Username      string `json:"preferred_username"`
		Role          string `json:"role"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", errors.Wrap(err, "[Provider.HandleCallback] extract claims")
	}
	if claims.Nonce != pending.nonce {
		return "", errors.New("[Provider.HandleCallback] nonce mismatch")
	}

	role := users.RoleType(claims.Role)
	switch role {
	case users.RoleAdmin, users.RoleModerator, users.RoleUser, users.RoleGuest:
	default:
		role = users.RoleUser
	}

	user := &users.User{
		ID:            claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Username:      claims.Username,
		Name:          claims.Name,
		Role:          role,
	}
	if err := p.IssueSession(w, user); err != nil {
		return "", err
	}

	return pending.returnTo, nil
}
