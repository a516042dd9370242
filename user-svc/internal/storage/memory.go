package storage

import (
	"context"
	"sync"

	"restaurant-lookup/user-svc/internal/domain"
)

// MemoryRepository keeps accounts in process memory. Used for local runs and
// tests; it satisfies the same contract as PostgresRepository.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]domain.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[user.Email]
	if !ok {
		return domain.ErrUserNotFound
	}
	current.Username = user.Username
	current.PasswordHash = user.PasswordHash
	r.users[user.Email] = current
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[email]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, email)
	return nil
}
