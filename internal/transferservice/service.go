// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AccountGetter provides account lookup needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountGetter interface {
	Get(ctx context.Context, id int64) (*account.Account, error)
}

// Bank executes the transfer between two accounts.
type Bank interface {
	Transfer(ctx context.Context, src, dst *account.Account, amount decimal.Decimal) (int64, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	accounts AccountGetter
	bank     Bank
}

// New returns transfer service struct to manage transfer business logic.
func New(ag AccountGetter, b Bank) *Service {
	return &Service{
		accounts: ag,
		bank:     b,
	}
}

// Transfer checks that fromUsername owns the source account and then executes the transfer.
func (s *Service) Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	from, err := s.accounts.Get(ctx, arg.FromAccountID)
	if err != nil {
		l.Info().Err(err).Int64("from_account_id", arg.FromAccountID).Send()
		return domain.TransferResult{}, err
	}

	if from.Owner() != fromUsername {
		l.Warn().Err(domain.ErrInvalidOwner).Int64("from_account_id", arg.FromAccountID).Send()
		return domain.TransferResult{}, domain.ErrInvalidOwner
	}

	to, err := s.accounts.Get(ctx, arg.ToAccountID)
	if err != nil {
		l.Info().Err(err).Int64("to_account_id", arg.ToAccountID).Send()
		return domain.TransferResult{}, err
	}

	txID, err := s.bank.Transfer(ctx, from, to, arg.Amount)
	if err != nil {
		return domain.TransferResult{TxID: txID}, err
	}

	result := domain.TransferResult{
		TxID:        txID,
		FromAccount: from.Snapshot(),
		ToAccount:   to.Snapshot(),
	}

	return result, nil
}
