package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Manager funnels every store access through a Repository and serializes
// operations on the same session, so each session has a single writer at a
// time while different sessions proceed concurrently.
type Manager struct {
	repo  Repository
	ttl   time.Duration
	locks *keyedMutex
}

func NewManager(repo Repository, ttl time.Duration) *Manager {
	return &Manager{
		repo:  repo,
		ttl:   ttl,
		locks: newKeyedMutex(),
	}
}

func (m *Manager) load(ctx context.Context, id string) (*Store, bool, error) {
	snap, err := m.repo.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewStore(), false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return Restore(snap), true, nil
}

// Update runs fn against the session's store and persists the result when
// fn succeeds. A missing session starts empty.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Store) error) error {
	unlock := m.locks.lock(id)
	defer unlock()

	store, _, err := m.load(ctx, id)
	if err != nil {
		return err
	}

	before := store.Version()
	if err := fn(store); err != nil {
		return err
	}

	if store.Version() == before {
		return m.touch(ctx, id)
	}

	if err := m.repo.Save(ctx, id, store.Snapshot(), m.ttl); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	return nil
}

// View runs fn against a read-only copy of the session's store and extends
// the session's lifetime.
func (m *Manager) View(ctx context.Context, id string, fn func(*Store) error) error {
	unlock := m.locks.lock(id)
	defer unlock()

	store, exists, err := m.load(ctx, id)
	if err != nil {
		return err
	}

	if err := fn(store); err != nil {
		return err
	}

	if exists {
		return m.touch(ctx, id)
	}

	return nil
}

func (m *Manager) touch(ctx context.Context, id string) error {
	err := m.repo.Touch(ctx, id, m.ttl)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		// TTL refresh is best effort.
		slog.Warn("Failed to refresh session TTL", slog.String("error", err.Error()))
	}

	return nil
}

// Destroy drops the session entirely.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	unlock := m.locks.lock(id)
	defer unlock()

	return m.repo.Delete(ctx, id)
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refMutex{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
