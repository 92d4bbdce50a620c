package server

func (s *Server) initRoutes() {
	// Connect handoff
	s.RegisterRouteFunc("GET "+RouteSSO, ChainMiddleware(s.SSOLoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSSO, ChainMiddleware(s.SSOLogoutSyncHandler(), s.APIMiddleware()...))

	// Login resume flow
	s.RegisterRouteFunc("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthHandler())
}
