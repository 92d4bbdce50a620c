package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-forum-connect/internal/apperrors"
	"github.com/jrsteele09/go-forum-connect/users"
)

// LoginHandler starts the login flow for an anonymous visitor, carrying
// return_to so the interrupted handoff resumes afterwards.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.login == nil {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication is not available")
			return
		}

		returnTo := sanitizeReturnTo(r.URL.Query().Get("return_to"))
		loginURL, err := s.login.LoginURL(returnTo)
		if err != nil {
			if apperrors.Is(err, users.ErrNoLoginFlow) {
				writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication is not available")
				return
			}
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("login flow failure")
			writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		http.Redirect(w, r, loginURL, http.StatusFound)
	}
}

// CallbackHandler completes the login flow and redirects back to the
// preserved local target (by default the interrupted /sso handoff).
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.login == nil {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication is not available")
			return
		}

		returnTo, err := s.login.HandleCallback(r.Context(), w, r)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("login callback rejected")
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "login failed")
			return
		}

		target := sanitizeReturnTo(returnTo)
		if target == "" {
			target = "/"
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// sanitizeReturnTo keeps resume targets on this host: a single leading
// slash and no scheme. Anything else (absolute URLs, protocol-relative
// //host paths, backslash tricks) is dropped.
func sanitizeReturnTo(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return ""
	}
	if strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return ""
	}
	return raw
}
