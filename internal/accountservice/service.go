// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, kind, owner string, initialBalance decimal.Decimal) (*account.Account, error)
	Get(ctx context.Context, id int64) (*account.Account, error)
	List(ctx context.Context, owner string, limit, offset int32) ([]*account.Account, error)
}

// Bank moves money in and out of a single account.
type Bank interface {
	Deposit(ctx context.Context, acc *account.Account, amount decimal.Decimal) (int64, error)
	Withdraw(ctx context.Context, acc *account.Account, amount decimal.Decimal) (int64, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
	bank Bank
}

// New returns account service struct to manage account business logic.
func New(ar Repo, b Bank) *Service {
	return &Service{
		repo: ar,
		bank: b,
	}
}

// Create opens an account of the given kind for owner.
func (s *Service) Create(ctx context.Context, owner, kind string, initialBalance decimal.Decimal) (domain.Account, error) {
	acc, err := s.repo.Create(ctx, kind, owner, initialBalance)
	if err != nil {
		return domain.Account{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("account_id", acc.ID()).
		Str("kind", string(acc.Kind())).
		Msg("account created")

	return acc.Snapshot(), nil
}

func (s *Service) owned(ctx context.Context, owner string, id int64) (*account.Account, error) {
	acc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if acc.Owner() != owner {
		zerolog.Ctx(ctx).Warn().Int64("account_id", id).Str("username", owner).Msg("owner mismatch")
		return nil, domain.ErrInvalidOwner
	}

	return acc, nil
}

// Get returns the account for the given id if owner holds it.
func (s *Service) Get(ctx context.Context, owner string, id int64) (domain.Account, error) {
	acc, err := s.owned(ctx, owner, id)
	if err != nil {
		return domain.Account{}, err
	}

	return acc.Snapshot(), nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, owner, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Account, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, acc.Snapshot())
	}

	return result, nil
}

// History returns the ledger of the account, failed attempts included.
func (s *Service) History(ctx context.Context, owner string, id int64) ([]domain.Transaction, error) {
	acc, err := s.owned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	return acc.History(), nil
}

// Deposit adds amount to the owner's account.
func (s *Service) Deposit(ctx context.Context, owner string, id int64, amount decimal.Decimal) (domain.MovementResult, error) {
	acc, err := s.owned(ctx, owner, id)
	if err != nil {
		return domain.MovementResult{}, err
	}

	txID, err := s.bank.Deposit(ctx, acc, amount)
	if err != nil {
		return domain.MovementResult{TxID: txID}, err
	}

	return domain.MovementResult{TxID: txID, Account: acc.Snapshot()}, nil
}

// Withdraw takes amount from the owner's account.
func (s *Service) Withdraw(ctx context.Context, owner string, id int64, amount decimal.Decimal) (domain.MovementResult, error) {
	acc, err := s.owned(ctx, owner, id)
	if err != nil {
		return domain.MovementResult{}, err
	}

	txID, err := s.bank.Withdraw(ctx, acc, amount)
	if err != nil {
		return domain.MovementResult{TxID: txID}, err
	}

	return domain.MovementResult{TxID: txID, Account: acc.Snapshot()}, nil
}
