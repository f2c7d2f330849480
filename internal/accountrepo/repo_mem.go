// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"sync"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/go-petr/mini-bank/internal/accountfactory"
	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoMem keeps live accounts in memory. Account ids start at 1 and are never reused.
type RepoMem struct {
	mu       sync.RWMutex
	lastID   int64
	accounts map[int64]*account.Account
	ordered  []*account.Account
}

// NewRepoMem returns an empty account RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[int64]*account.Account),
	}
}

// Create builds the account through the factory and stores it.
func (r *RepoMem) Create(ctx context.Context, kind, owner string, initialBalance decimal.Decimal) (*account.Account, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := accountfactory.Create(kind, r.lastID+1, owner, initialBalance)
	if err != nil {
		l.Info().Err(err).Str("kind", kind).Send()
		return nil, err
	}

	r.lastID = acc.ID()
	r.accounts[acc.ID()] = acc
	r.ordered = append(r.ordered, acc)

	return acc, nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(_ context.Context, id int64) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return acc, nil
}

// List returns a page of the owner's accounts ordered by id.
func (r *RepoMem) List(_ context.Context, owner string, limit, offset int32) ([]*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*account.Account{}

	var skipped int32

	for _, acc := range r.ordered {
		if acc.Owner() != owner {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		if int32(len(result)) >= limit {
			break
		}

		result = append(result, acc)
	}

	return result, nil
}
