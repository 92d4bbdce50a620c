package providerfake

import (
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/go-forum-connect/users"
)

var _ users.SessionProvider = (*FakeSessionProvider)(nil)

// FakeSessionProvider is an in-memory SessionProvider for tests. Set a
// user with SetUser to simulate an authenticated visitor; leave it nil
// for anonymous requests.
type FakeSessionProvider struct {
	lock        sync.RWMutex
	user        *users.User
	err         error
	invalidated []string
}

func NewFakeSessionProvider() *FakeSessionProvider {
	return &FakeSessionProvider{}
}

func (p *FakeSessionProvider) SetUser(user *users.User) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.user = user
}

func (p *FakeSessionProvider) SetError(err error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.err = err
}

func (p *FakeSessionProvider) CurrentUser(ctx context.Context, r *http.Request) (*users.User, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.user, nil
}

func (p *FakeSessionProvider) InvalidateSessions(ctx context.Context, externalID string) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.err != nil {
		return p.err
	}
	p.invalidated = append(p.invalidated, externalID)
	if p.user != nil && p.user.ID == externalID {
		p.user = nil
	}
	return nil
}

// Invalidated returns the external IDs passed to InvalidateSessions, in order.
func (p *FakeSessionProvider) Invalidated() []string {
	p.lock.RLock()
	defer p.lock.RUnlock()
	out := make([]string, len(p.invalidated))
	copy(out, p.invalidated)
	return out
}
