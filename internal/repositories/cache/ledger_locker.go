package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLedgerLocker holds a short Redis lock per ledger entry while it is being written.
type RedisLedgerLocker struct {
	locker  *redislock.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

// NewRedisLedgerLocker creates a locker. Obtain is retried up to retries times, backoff apart.
func NewRedisLedgerLocker(client *redis.Client, ttl time.Duration, retries int, backoff time.Duration) *RedisLedgerLocker {
	return &RedisLedgerLocker{
		locker:  redislock.New(client),
		ttl:     ttl,
		retries: retries,
		backoff: backoff,
	}
}

// Ensure RedisLedgerLocker implements portsrepo.LedgerLocker
var _ portsrepo.LedgerLocker = (*RedisLedgerLocker)(nil)

// LockKey is the Redis key guarding one ledger entry.
func LockKey(ledgerID int64) string {
	return fmt.Sprintf("%s:lock:ledger:%d", keyPrefix, ledgerID)
}

// Lock obtains the ledger lock or reports apperrors.ErrConflict when another writer holds it.
func (l *RedisLedgerLocker) Lock(ctx context.Context, ledgerID int64) (func(context.Context), error) {
	lock, err := l.locker.Obtain(ctx, LockKey(ledgerID), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: ledger entry %d is being updated by another request", apperrors.ErrConflict, ledgerID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock ledger entry %d", ledgerID), err)
	}

	release := func(ctx context.Context) {
		// An expired lock is not an error; the row lock and version check still held.
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.WarnContext(ctx, "Failed to release ledger lock", "ledger_id", ledgerID, "error", err)
		}
	}
	return release, nil
}
