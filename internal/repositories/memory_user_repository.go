package repository

import (
	"context"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/google/uuid"
)

// memoryUserRepository backs auth when no database is configured. Accounts
// live for the lifetime of the process.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func NewMemoryUserRepo() UserRepository {
	return &memoryUserRepository{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byEmail[user.Email] = &stored
	r.byID[user.ID] = &stored

	return nil
}

func (r *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	out := *user
	return &out, nil
}

func (r *memoryUserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	out := *user
	out.Password = ""
	return &out, nil
}
