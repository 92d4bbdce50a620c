package connect

import "errors"

// Protocol failure classes. Every validator/mapper failure wraps exactly
// one of these so the HTTP boundary has a single errors.Is switch.
var (
	ErrMissingParameter     = errors.New("missing parameter")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrOpenRedirectRejected = errors.New("return url not on the configured forum origin")
	ErrUnauthenticatedUser  = errors.New("no authenticated user")
	ErrUnverifiedEmail      = errors.New("email address not verified")
)
