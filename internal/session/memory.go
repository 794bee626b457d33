package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryRepository keeps encoded snapshots in process memory. Entries past
// their TTL are treated as missing and dropped by Sweep.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Load(ctx context.Context, id string) (*Snapshot, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok || !r.now().Before(entry.expires) {
		return nil, ErrSessionNotFound
	}

	var snap Snapshot
	if err := json.Unmarshal(entry.data, &snap); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}

	return &snap, nil
}

func (r *MemoryRepository) Save(ctx context.Context, id string, snap *Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", id, err)
	}

	r.mu.Lock()
	r.entries[id] = memoryEntry{data: data, expires: r.now().Add(ttl)}
	r.mu.Unlock()

	return nil
}

func (r *MemoryRepository) Touch(ctx context.Context, id string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return ErrSessionNotFound
	}

	entry.expires = r.now().Add(ttl)
	r.entries[id] = entry

	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()

	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (r *MemoryRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, entry := range r.entries {
		if !now.Before(entry.expires) {
			delete(r.entries, id)
			removed++
		}
	}

	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *MemoryRepository) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
