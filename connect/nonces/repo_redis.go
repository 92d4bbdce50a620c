package nonces

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ Repo = (*RedisRepo)(nil)

// RedisRepo is a shared replay guard for multi-instance deployments.
// SETNX with a TTL gives the atomic check-and-set; Redis expiry handles
// the validity window.
type RedisRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRepo(client *redis.Client, ttl time.Duration) *RedisRepo {
	return &RedisRepo{
		client: client,
		prefix: "connect:nonce:",
		ttl:    ttl,
	}
}

func (r *RedisRepo) Seen(ctx context.Context, nonce string) (bool, error) {
	set, err := r.client.SetNX(ctx, r.prefix+nonce, "1", r.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "[RedisRepo.Seen] SETNX")
	}
	return !set, nil
}
