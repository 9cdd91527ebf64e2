package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyParametersLock = "immolens:lock:parameters:%d"

	// compare-and-delete so an expired holder never frees a newer lock
	unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`
)

var (
	ErrLockHeld        = errors.New("lock_held")
	ErrLockUnavailable = errors.New("lock_unavailable")
	ErrInvalidLock     = errors.New("lock_invalid")
)

// ParametersLockKey names the lock serializing refreshes of one fiscal year
// across instances.
func ParametersLockKey(fiscalYear int) string {
	return fmt.Sprintf(keyParametersLock, fiscalYear)
}

type LockerParams struct {
	fx.In

	Client *redis.Client `optional:"true"`
	Log    *zap.Logger   `optional:"true"`
}

// Locker serializes fiscal parameter refreshes through Redis SET NX. Without
// Redis the process is the only writer, so a nil Locker runs every section.
type Locker struct {
	client redis.Cmdable
	unlock *redis.Script
	log    *zap.Logger
}

func NewLocker(p LockerParams) *Locker {
	if p.Client == nil {
		return nil
	}
	return newLocker(p.Client, p.Log)
}

func newLocker(client redis.Cmdable, log *zap.Logger) *Locker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Locker{
		client: client,
		unlock: redis.NewScript(unlockScript),
		log:    log.Named("ratelimit.lock"),
	}
}

// WithLock runs fn while holding key for at most ttl. It returns ErrLockHeld
// without calling fn when another holder owns key, and ErrLockUnavailable when
// Redis cannot be reached. A failed release is logged; the key still expires.
func (l *Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	if key == "" || ttl <= 0 {
		return ErrInvalidLock
	}
	if l == nil {
		return fn(ctx)
	}

	token := uuid.NewString()
	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return errors.Join(ErrLockUnavailable, err)
	}
	if !acquired {
		return ErrLockHeld
	}

	defer func() {
		// the caller context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := l.unlock.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warn("lock release failed", zap.String("key", key), zap.Error(err))
		}
	}()
	return fn(ctx)
}
