package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// systemSecretHeader authenticates the forum system itself on the logout
// sync path. This is system-to-system auth, not an end-user session.
const systemSecretHeader = "X-Connect-Secret"

// SSOLoginHandler is the GET login handoff: validate the inbound signed
// envelope, resolve the current user, map the identity, and 302 back to
// the forum with a re-signed payload. The path is a stateless
// passthrough; nothing survives the response.
func (s *Server) SSOLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		query := r.URL.Query()
		payload, err := s.validator.Validate(query.Get("sso"), query.Get("sig"))
		if err != nil {
			s.writeConnectError(w, r, err)
			return
		}

		user, err := s.sessions.CurrentUser(r.Context(), r)
		if err != nil {
			logger.Error().Err(err).Msg("session provider failure")
			writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}
		if user == nil {
			s.redirectToLogin(w, r)
			return
		}

		identity, err := s.mapper.Map(user)
		if err != nil {
			s.writeConnectError(w, r, err)
			return
		}

		// The nonce is marked used only once the handoff is actually
		// answered. An anonymous visitor detouring through the login flow
		// comes back with the same envelope, and that resumption must not
		// read as a replay.
		if s.replay != nil {
			seen, err := s.replay.Seen(r.Context(), payload.Nonce)
			if err != nil {
				logger.Error().Err(err).Msg("replay guard unavailable")
				writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
				return
			}
			if seen {
				// Deliberately indistinguishable from a bad signature so
				// the response does not reveal which check failed.
				logger.Warn().Msg("replayed nonce rejected")
				writeError(w, http.StatusUnauthorized, codeInvalidSignature, "invalid signature")
				return
			}
		}

		logger.Info().Str("external_id", identity.ExternalID).Msg("sso handoff complete")
		http.Redirect(w, r, s.responder.Build(payload.Nonce, identity, payload.ReturnURL), http.StatusFound)
	}
}

// redirectToLogin sends an anonymous visitor to the local login flow with
// the original sso/sig preserved, so the handoff resumes after login.
// Without a login flow the request terminates with 401.
func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if s.login == nil {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return
	}
	returnTo := RouteSSO + "?" + r.URL.RawQuery
	http.Redirect(w, r, RouteAuthLogin+"?return_to="+url.QueryEscape(returnTo), http.StatusFound)
}

type logoutSyncRequest struct {
	ExternalID string `json:"external_id"`
}

// SSOLogoutSyncHandler is the POST logout sync: the forum announces that
// a user logged out there, and the bridge invalidates the matching local
// sessions. The only side effect is the delegated session invalidation.
func (s *Server) SSOLogoutSyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		if !s.systemCallerAuthorized(r) {
			logger.Warn().Msg("logout sync rejected: bad system credentials")
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid system credentials")
			return
		}

		var req logoutSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeMalformedPayload, "invalid request body")
			return
		}
		if req.ExternalID == "" {
			writeError(w, http.StatusBadRequest, codeMissingParameter, "external_id is required")
			return
		}

		if err := s.sessions.InvalidateSessions(r.Context(), req.ExternalID); err != nil {
			logger.Error().Err(err).Msg("session invalidation failed")
			writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		logger.Info().Str("external_id", req.ExternalID).Msg("logout sync complete")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// systemCallerAuthorized compares the supplied header against the shared
// secret. Both sides are hashed first so the comparison is constant time
// regardless of length.
func (s *Server) systemCallerAuthorized(r *http.Request) bool {
	supplied := r.Header.Get(systemSecretHeader)
	if supplied == "" {
		return false
	}
	suppliedSum := sha256.Sum256([]byte(supplied))
	expectedSum := sha256.Sum256(s.config.GetSharedSecret())
	return subtle.ConstantTimeCompare(suppliedSum[:], expectedSum[:]) == 1
}

// HealthHandler reports liveness. Reaching it at all means configuration
// validated, since the process refuses to start otherwise.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
