package session

import (
	"context"
	"maps"
	"sync"
	"time"
)

type memoryEntry struct {
	values    map[string]string
	expiresAt time.Time
}

type memoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func (b *memoryBackend) get(_ context.Context, id string) (map[string]string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[id]
	if !ok {
		return nil, false, nil
	}
	if b.now().After(entry.expiresAt) {
		delete(b.entries, id)
		return nil, false, nil
	}
	return maps.Clone(entry.values), true, nil
}

func (b *memoryBackend) put(_ context.Context, id string, values map[string]string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[id] = memoryEntry{values: maps.Clone(values), expiresAt: b.now().Add(ttl)}
	return nil
}

// sweep drops every expired entry and reports how many went.
func (b *memoryBackend) sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	n := 0
	for id, entry := range b.entries {
		if now.After(entry.expiresAt) {
			delete(b.entries, id)
			n++
		}
	}
	return n
}

func (b *memoryBackend) remove(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, id)
	return nil
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	serverStore
}

func NewMemoryStore(cookie CookieOptions) *MemoryStore {
	b := &memoryBackend{entries: map[string]memoryEntry{}, now: time.Now}
	return &MemoryStore{serverStore{backend: b, cookie: cookie}}
}

// StartSweeper drops expired sessions every interval until ctx is done.
// Without it an abandoned session stays in memory until its id is read again.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	b := m.backend.(*memoryBackend)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.sweep()
			}
		}
	}()
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	b := m.backend.(*memoryBackend)
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
