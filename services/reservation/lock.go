package reservation

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotLock is a short-lived advisory lock keyed by (professional, date) that
// serializes the check-then-insert of the booking critical section. It is the
// first line of defense; the partial unique index on reservations is the
// authoritative one, so losing redis degrades to the index, never to a double
// booking.
type SlotLock struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSlotLock(client *redis.Client) *SlotLock {
	return &SlotLock{Client: client, TTL: 5 * time.Second}
}

// Acquire takes the lock and returns a release func. A held lock means
// another booking for the same professional/date is mid-flight; callers
// surface that as Conflict.
func (l *SlotLock) Acquire(ctx context.Context, professionalID, date string) (func(), error) {
	if l == nil || l.Client == nil {
		return func() {}, nil
	}
	key := fmt.Sprintf("booklock:%s:%s", professionalID, date)
	ok, err := l.Client.SetNX(ctx, key, "1", l.TTL).Result()
	if err != nil {
		// Degrade to the unique index.
		utils.GetLogger().Warn("booking lock unavailable", zap.String("key", key), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, models.NewConflict("another booking for this date is in progress, try again")
	}
	release := func() {
		if err := l.Client.Del(context.Background(), key).Err(); err != nil {
			utils.GetLogger().Warn("failed to release booking lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}
