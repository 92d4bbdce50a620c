package server

import (
	"context"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-forum-connect/connect"
	"github.com/jrsteele09/go-forum-connect/connect/nonces"
	"github.com/jrsteele09/go-forum-connect/internal/config"
	"github.com/jrsteele09/go-forum-connect/users"
)

// LoginFlow is implemented by session providers that can establish a
// session for an anonymous visitor and resume an interrupted handoff.
type LoginFlow interface {
	LoginURL(returnTo string) (string, error)
	HandleCallback(ctx context.Context, w http.ResponseWriter, r *http.Request) (returnTo string, err error)
}

// Deps holds the collaborator dependencies for the Server. Login and
// Replay are optional; Sessions is required.
type Deps struct {
	Sessions users.SessionProvider
	Login    LoginFlow
	Replay   nonces.Repo
}

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	logger zerolog.Logger

	validator *connect.RequestValidator
	responder *connect.ResponseBuilder
	mapper    connect.IdentityMapper

	sessions users.SessionProvider
	login    LoginFlow
	replay   nonces.Repo
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil {
		return nil, errors.New("[Server New] session provider is required")
	}

	secret := cfg.GetSharedSecret()
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		logger:    zerolog.New(os.Stdout).With().Timestamp().Logger(),
		validator: connect.NewRequestValidator(secret, cfg.GetForumBaseURL()),
		responder: connect.NewResponseBuilder(secret),
		sessions:  deps.Sessions,
		login:     deps.Login,
		replay:    deps.Replay,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.logger.Info().Str("route", route).Msg("registered route")
	}
}
