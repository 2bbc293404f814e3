package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist keeps denied token ids in process. It is used when no
// Redis is configured; entries do not survive a restart or span replicas.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryDenylist) Deny(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !until.After(now) {
		return nil
	}
	m.entries[tokenID] = until
	m.sweep(now)
	return nil
}

func (m *MemoryDenylist) IsDenied(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(m.now()) {
		delete(m.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// sweep drops expired entries. Caller holds mu.
func (m *MemoryDenylist) sweep(now time.Time) {
	for id, until := range m.entries {
		if !until.After(now) {
			delete(m.entries, id)
		}
	}
}
