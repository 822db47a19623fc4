package repository

import (
	"context"
	"sync"

	"founderhub/internal/model"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

// NewMemoryUserRepository creates a process-local UserRepository.
// Data is lost on restart; intended for development and tests.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byEmail: make(map[string]*model.User),
		byID:    make(map[string]*model.User),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	stored := cloneUser(user)
	r.byEmail[stored.Email] = stored
	r.byID[stored.ID] = stored
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// callers must never share the stored pointer
func cloneUser(u *model.User) *model.User {
	c := *u
	if u.Startup != nil {
		s := *u.Startup
		c.Startup = &s
	}
	return &c
}
