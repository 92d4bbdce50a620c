package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Connect handoff endpoint (GET login handoff, POST logout sync)
	RouteSSO = "/sso"

	// Login resume flow for anonymous visitors
	RouteAuthLogin    = "/auth/login"
	RouteAuthCallback = "/auth/callback"

	// Liveness probe
	RouteHealthz = "/healthz"
)
