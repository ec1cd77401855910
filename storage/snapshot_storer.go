package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coreybb/boardroom/models"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSnapshotTTL        = 30 * time.Minute
	DefaultMaxMemorySnapshots = 1024
)

// ErrSnapshotNotFound is returned for unknown, expired or already consumed tokens.
var ErrSnapshotNotFound = errors.New("board snapshot not found")

// SnapshotStorer hands a set of brief items from the search view to the board.
// A snapshot can be read exactly once.
type SnapshotStorer interface {
	// Put stores items and returns the opaque token that retrieves them.
	Put(ctx context.Context, items []models.BriefItem) (token string, expiresAt time.Time, err error)
	// Take returns and deletes the snapshot for token.
	Take(ctx context.Context, token string) ([]models.BriefItem, error)
}

// MemorySnapshotStorer keeps snapshots in a bounded, expiring in-process cache.
// Snapshots are lost on restart and are not shared between replicas.
type MemorySnapshotStorer struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, []models.BriefItem]
	ttl   time.Duration
	now   func() time.Time
}

func NewMemorySnapshotStorer(size int, ttl time.Duration) *MemorySnapshotStorer {
	if size <= 0 {
		size = DefaultMaxMemorySnapshots
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &MemorySnapshotStorer{
		cache: expirable.NewLRU[string, []models.BriefItem](size, nil, ttl),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemorySnapshotStorer) Put(ctx context.Context, items []models.BriefItem) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}
	token := uuid.NewString()
	stored := append([]models.BriefItem(nil), items...)
	m.cache.Add(token, stored)
	return token, m.now().Add(m.ttl).UTC(), nil
}

func (m *MemorySnapshotStorer) Take(ctx context.Context, token string) ([]models.BriefItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.cache.Get(token)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	m.cache.Remove(token)
	return items, nil
}
