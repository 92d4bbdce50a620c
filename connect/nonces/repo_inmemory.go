package nonces

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCapacity bounds the in-memory guard; oldest entries are evicted
// first, so memory stays fixed even under flood.
const DefaultCapacity = 65536

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a single-process replay guard backed by an expirable
// LRU. Suitable when the bridge runs as one instance; multi-instance
// deployments need the Redis repo so all replicas share the ledger.
type InMemoryRepo struct {
	lock  sync.Mutex
	cache *expirable.LRU[string, struct{}]
}

func NewInMemoryRepo(capacity int, ttl time.Duration) *InMemoryRepo {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryRepo{
		cache: expirable.NewLRU[string, struct{}](capacity, nil, ttl),
	}
}

func (r *InMemoryRepo) Seen(_ context.Context, nonce string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.cache.Get(nonce); ok {
		return true, nil
	}
	r.cache.Add(nonce, struct{}{})
	return false, nil
}
