package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/platform/logging"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by someone else is left alone.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// RedisLocker serializes postings across processes with SET NX PX.
type RedisLocker struct {
	client        *redis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	maxRetries    int
}

var _ portssvc.ObligationLocker = (*RedisLocker)(nil)

// NewRedisLocker creates a locker. The lock expires after ttl even if the
// holder never releases it.
func NewRedisLocker(client *redis.Client, prefix string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if prefix == "" {
		prefix = "ledgers"
	}
	interval := 50 * time.Millisecond
	return &RedisLocker{
		client:        client,
		prefix:        prefix,
		ttl:           ttl,
		retryInterval: interval,
		maxRetries:    int(ttl / interval),
	}
}

func (l *RedisLocker) key(name string) string {
	return fmt.Sprintf("%s:lock:%s", l.prefix, name)
}

// Lock retries until the key is free, ctx is done, or one ttl has passed.
func (l *RedisLocker) Lock(ctx context.Context, name string) (func(), error) {
	key := l.key(name)
	token := uuid.NewString()

	for i := 0; i <= l.maxRetries; i++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: acquiring lock %s: %w", apperrors.ErrStorage, key, err)
		}
		if ok {
			return l.unlocker(ctx, key, token), nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
	return nil, fmt.Errorf("%s: %w", name, apperrors.ErrLocked)
}

func (l *RedisLocker) unlocker(ctx context.Context, key, token string) func() {
	var once sync.Once
	logger := logging.FromContextOrDefault(ctx)
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := l.client.Eval(releaseCtx, releaseScript, []string{key}, token).Err(); err != nil {
				logger.Warn("Failed to release lock", slog.String("key", key), slog.String("error", err.Error()))
			}
		})
	}
}
