// Package nonces implements the optional replay guard: a bounded,
// TTL-limited record of nonces the bridge has already answered. The
// protocol itself does not require it (the forum correlates the round
// trip), so the guard is a configurable hardening layer against replay of
// a captured sso/sig pair inside the validity window.
package nonces

import "context"

// Repo records nonces with per-key check-and-set semantics.
type Repo interface {
	// Seen marks the nonce as used and reports whether it had already
	// been recorded inside the TTL window. The check and the mark are a
	// single atomic step so concurrent replays cannot both pass.
	Seen(ctx context.Context, nonce string) (bool, error)
}
