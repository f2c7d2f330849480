// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/mini-bank/internal/domain"
)

// RepoMem keeps registered users in memory.
type RepoMem struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewRepoMem returns an empty user RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{users: make(map[string]domain.User)}
}

// Create stores the user and returns it.
func (r *RepoMem) Create(_ context.Context, arg domain.CreateUserParams) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[arg.Username]; ok {
		return domain.User{}, domain.ErrUsernameAlreadyExists
	}

	u := domain.User{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		FullName:       arg.FullName,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	r.users[u.Username] = u

	return u, nil
}

// Get returns the user with the given username.
func (r *RepoMem) Get(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}
