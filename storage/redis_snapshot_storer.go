package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coreybb/boardroom/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "boardroom:snapshot:"

// RedisSnapshotStorer keeps snapshots in Redis so any replica can serve the board.
// Take uses GETDEL, so a snapshot is consumed atomically even under concurrent reads.
type RedisSnapshotStorer struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisSnapshotStorer connects using a redis:// URL.
func NewRedisSnapshotStorer(redisURL string, ttl time.Duration) (*RedisSnapshotStorer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return NewRedisSnapshotStorerWithClient(redis.NewClient(opts), ttl), nil
}

func NewRedisSnapshotStorerWithClient(client *redis.Client, ttl time.Duration) *RedisSnapshotStorer {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &RedisSnapshotStorer{client: client, ttl: ttl, now: time.Now}
}

// Ping checks connectivity.
func (r *RedisSnapshotStorer) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisSnapshotStorer) Close() error {
	return r.client.Close()
}

func (r *RedisSnapshotStorer) Put(ctx context.Context, items []models.BriefItem) (string, time.Time, error) {
	if items == nil {
		items = []models.BriefItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	token := uuid.NewString()
	if err := r.client.Set(ctx, snapshotKeyPrefix+token, payload, r.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return token, r.now().Add(r.ttl).UTC(), nil
}

func (r *RedisSnapshotStorer) Take(ctx context.Context, token string) ([]models.BriefItem, error) {
	payload, err := r.client.GetDel(ctx, snapshotKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var items []models.BriefItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", token, err)
	}
	return items, nil
}
