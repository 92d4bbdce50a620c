package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-forum-connect/connect"
	"github.com/jrsteele09/go-forum-connect/internal/apperrors"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Stable machine-readable error codes. The human message stays generic:
// responses never echo the secret, the raw payload, or internal state.
const (
	codeMissingParameter = "missing_parameter"
	codeMalformedPayload = "malformed_payload"
	codeInvalidSignature = "invalid_signature"
	codeOpenRedirect     = "open_redirect_rejected"
	codeUnauthenticated  = "unauthenticated"
	codeUnverifiedEmail  = "unverified_email"
	codeInternal         = "internal_error"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeConnectError translates a validator/mapper failure into its HTTP
// status and stable code, and logs the underlying error server-side with
// the request correlation data.
func (s *Server) writeConnectError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := connectErrorStatus(err)
	zerolog.Ctx(r.Context()).Warn().Err(err).Str("code", code).Msg("connect request rejected")
	writeError(w, status, code, message)
}

func connectErrorStatus(err error) (int, string, string) {
	switch {
	case apperrors.Is(err, connect.ErrMissingParameter):
		return http.StatusBadRequest, codeMissingParameter, "missing or empty parameter"
	case apperrors.Is(err, connect.ErrMalformedPayload):
		return http.StatusBadRequest, codeMalformedPayload, "malformed payload"
	case apperrors.Is(err, connect.ErrOpenRedirectRejected):
		return http.StatusBadRequest, codeOpenRedirect, "return url rejected"
	case apperrors.Is(err, connect.ErrInvalidSignature):
		return http.StatusUnauthorized, codeInvalidSignature, "invalid signature"
	case apperrors.Is(err, connect.ErrUnverifiedEmail):
		return http.StatusUnauthorized, codeUnverifiedEmail, "email address not verified"
	case apperrors.Is(err, connect.ErrUnauthenticatedUser):
		return http.StatusUnauthorized, codeUnauthenticated, "authentication required"
	default:
		return http.StatusInternalServerError, codeInternal, "internal error"
	}
}
