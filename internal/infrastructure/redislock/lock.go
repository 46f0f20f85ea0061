package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	interfaces "main/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the lease could not be obtained within
// the acquire timeout.
var ErrNotAcquired = errors.New("lock not acquired")

const pollInterval = 50 * time.Millisecond

// releaseScript deletes the lock key only while it still holds our token,
// so a lease that expired and was re-acquired elsewhere is left alone.
const releaseScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`

// Locker hands out named expiring leases backed by Redis SET NX PX. The
// lease auto-expires even if the holder crashes without releasing.
type Locker struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *Locker {
	return &Locker{client: client}
}

// Acquire polls for the lease until acquireTimeout elapses. The returned
// lease expires leaseExpiry after the successful SET regardless of release.
func (l *Locker) Acquire(ctx context.Context, key string, acquireTimeout, leaseExpiry time.Duration) (interfaces.Lease, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(acquireTimeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, leaseExpiry).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return &lease{client: l.client, key: key, token: token}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("acquire lock %s: %w", key, ErrNotAcquired)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

type lease struct {
	client redis.Cmdable
	key    string
	token  string
}

func (l *lease) Release(ctx context.Context) error {
	if err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	return nil
}
