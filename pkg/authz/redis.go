package authz

import (
	"context"
	"errors"
	"io"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces the per-subject role sets in Redis.
const defaultKeyPrefix = "authz:roles:"

// Redis verifies roles via set membership: each subject owns a Redis set
// of granted role names under "<prefix><subject>".
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures the Redis verifier.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the role-set key prefix.
// Defaults to "authz:roles:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedis creates a Redis-backed verifier over an existing client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authorize reports whether the subject's role set contains every listed
// role. A store error counts as a denial and is surfaced to the caller.
func (r *Redis) Authorize(ctx context.Context, subject string, roles []string) (bool, error) {
	if len(roles) == 0 {
		return true, nil
	}

	members := make([]any, len(roles))
	for i, role := range roles {
		members[i] = role
	}

	held, err := r.client.SMIsMember(ctx, r.prefix+subject, members...).Result()
	if err != nil {
		return false, errors.Join(ErrVerificationFailed, err)
	}
	for _, ok := range held {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Grant adds roles to the subject's set. Used by provisioning code and
// tests; the dispatch gate itself never writes.
func (r *Redis) Grant(ctx context.Context, subject string, roles ...string) error {
	members := make([]any, len(roles))
	for i, role := range roles {
		members[i] = role
	}
	return r.client.SAdd(ctx, r.prefix+subject, members...).Err()
}

// Healthcheck returns a closure validating Redis connectivity, compatible
// with readiness checks expecting func(context.Context) error.
func (r *Redis) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := r.client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrVerificationFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the underlying client.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
