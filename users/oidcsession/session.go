package oidcsession

import (
	"context"
	"net/http"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-forum-connect/users"
)

const (
	defaultCookieName = "connect_session"
	defaultSessionTTL = 1 * time.Hour
)

// IssueSession mints an HS256 session token for the user and sets it as
// an HTTP-only cookie. The token itself is the session store; nothing is
// persisted server-side beyond the revocation list.
func (p *Provider) IssueSession(w http.ResponseWriter, user *users.User) error {
	now := p.nowTime()
	claims := jwtlib.MapClaims{
		"sub":            user.ID,
		"email":          user.Email,
		"email_verified": user.EmailVerified,
		"username":       user.Username,
		"name":           user.Name,
		"role":           string(user.Role),
		"iat":            now.Unix(),
		"exp":            now.Add(p.sessionTTL).Unix(),
		"jti":            uuid.New().String(),
	}

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(p.sessionSecret)
	if err != nil {
		return errors.Wrap(err, "[Provider.IssueSession] SignedString")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     p.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(p.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   p.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CurrentUser resolves the session cookie into a user. Any failure
// (missing cookie, bad signature, expiry, revocation) yields an anonymous
// (nil, nil) result rather than an error: a broken cookie is just a
// logged-out visitor.
func (p *Provider) CurrentUser(_ context.Context, r *http.Request) (*users.User, error) {
	cookie, err := r.Cookie(p.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	token, err := jwtlib.Parse(cookie.Value, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.sessionSecret, nil
	}, jwtlib.WithTimeFunc(p.nowTime))
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, nil
	}

	user := userFromClaims(claims)
	if user.ID == "" {
		return nil, nil
	}

	issuedAt, _ := claims.GetIssuedAt()
	if p.revokedSince(user.ID, issuedAt) {
		return nil, nil
	}

	return user, nil
}

// InvalidateSessions revokes every session minted for the user before
// now. Tokens are stateless, so revocation is a timestamp: any token with
// an earlier iat stops resolving.
func (p *Provider) InvalidateSessions(_ context.Context, externalID string) error {
	if externalID == "" {
		return errors.New("[Provider.InvalidateSessions] externalID is required")
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	now := p.nowTime()
	p.revoked[externalID] = now

	// Entries older than a session lifetime can no longer match a live
	// token; drop them so the map stays bounded.
	for id, revokedAt := range p.revoked {
		if now.Sub(revokedAt) > p.sessionTTL {
			delete(p.revoked, id)
		}
	}
	return nil
}

func (p *Provider) revokedSince(externalID string, issuedAt *jwtlib.NumericDate) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	revokedAt, ok := p.revoked[externalID]
	if !ok {
		return false
	}
	if issuedAt == nil {
		return true
	}
	return !issuedAt.Time.After(revokedAt)
}

func userFromClaims(claims jwtlib.MapClaims) *users.User {
	stringClaim := func(key string) string {
		if v, ok := claims[key].(string); ok {
			return v
		}
		return ""
	}
	boolClaim := func(key string) bool {
		v, ok := claims[key].(bool)
		return ok && v
	}

	role := users.RoleType(stringClaim("role"))
	switch role {
	case users.RoleAdmin, users.RoleModerator, users.RoleUser, users.RoleGuest:
	default:
		role = users.RoleUser
	}

	return &users.User{
		ID:            stringClaim("sub"),
		Email:         stringClaim("email"),
		EmailVerified: boolClaim("email_verified"),
		Username:      stringClaim("username"),
		Name:          stringClaim("name"),
		Role:          role,
	}
}
