package users

import "errors"

// ErrNoLoginFlow is returned by session providers that can resolve
// existing sessions but cannot start new logins (no identity provider
// configured).
var ErrNoLoginFlow = errors.New("no login flow configured")
