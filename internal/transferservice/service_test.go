package transferservice

import (
	"context"
	"testing"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/go-petr/mini-bank/pkg/errorspkg"
	"github.com/go-petr/mini-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	owner1 := randompkg.Owner()
	owner2 := randompkg.Owner()
	amount := decimal.NewFromInt(100)

	newAccounts := func() (*account.Account, *account.Account) {
		return account.New(1, owner1, domain.KindSavings, decimal.NewFromInt(1000)),
			account.New(2, owner2, domain.KindChecking, decimal.NewFromInt(1000))
	}

	testCases := []struct {
		name          string
		fromUsername  string
		buildStubs    func(accounts *MockAccountGetter, bank *MockBank, from, to *account.Account)
		checkResponse func(t *testing.T, res domain.TransferResult, err error, from, to *account.Account)
	}{
		{
			name:         "OK",
			fromUsername: owner1,
			buildStubs: func(accounts *MockAccountGetter, bank *MockBank, from, to *account.Account) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(from.ID())).Times(1).Return(from, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(to.ID())).Times(1).Return(to, nil)
				bank.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(from), gomock.Eq(to), gomock.Eq(amount)).
					Times(1).
					DoAndReturn(func(_ context.Context, src, dst *account.Account, amt decimal.Decimal) (int64, error) {
						return 3, src.TransferTo(dst, amt, 3)
					})
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error, from, to *account.Account) {
				require.NoError(t, err)
				require.Equal(t, int64(3), res.TxID)
				require.Equal(t, "900", res.FromAccount.Balance.String())
				require.Equal(t, "1100", res.ToAccount.Balance.String())
			},
		},
		{
			name:         "FromAccountNotFound",
			fromUsername: owner1,
			buildStubs: func(accounts *MockAccountGetter, bank *MockBank, from, to *account.Account) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(from.ID())).Times(1).Return(nil, domain.ErrAccountNotFound)
				bank.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error, from, to *account.Account) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
				require.Empty(t, res)
			},
		},
		{
			name:         "InvalidOwner",
			fromUsername: owner2,
			buildStubs: func(accounts *MockAccountGetter, bank *MockBank, from, to *account.Account) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(from.ID())).Times(1).Return(from, nil)
				bank.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error, from, to *account.Account) {
				require.ErrorIs(t, err, domain.ErrInvalidOwner)
				require.Empty(t, res)
			},
		},
		{
			name:         "ToAccountErr",
			fromUsername: owner1,
			buildStubs: func(accounts *MockAccountGetter, bank *MockBank, from, to *account.Account) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(from.ID())).Times(1).Return(from, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(to.ID())).Times(1).Return(nil, errorspkg.ErrInternal)
				bank.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error, from, to *account.Account) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name:         "InsufficientFunds",
			fromUsername: owner1,
			buildStubs: func(accounts *MockAccountGetter, bank *MockBank, from, to *account.Account) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(from.ID())).Times(1).Return(from, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(to.ID())).Times(1).Return(to, nil)
				bank.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(int64(4), domain.ErrInsufficientFunds)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error, from, to *account.Account) {
				require.ErrorIs(t, err, domain.ErrInsufficientFunds)
				require.Equal(t, int64(4), res.TxID)
				require.Empty(t, res.FromAccount)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			from, to := newAccounts()
			accounts := NewMockAccountGetter(ctrl)
			bank := NewMockBank(ctrl)
			tc.buildStubs(accounts, bank, from, to)

			s := New(accounts, bank)

			arg := domain.CreateTransferParams{
				FromAccountID: from.ID(),
				ToAccountID:   to.ID(),
				Amount:        amount,
			}

			res, err := s.Transfer(context.Background(), tc.fromUsername, arg)
			tc.checkResponse(t, res, err, from, to)
		})
	}
}
