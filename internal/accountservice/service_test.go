package accountservice

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

func randomAccount(owner string) *account.Account {
	return account.New(
		randompkg.IntBetween(1, 100),
		owner,
		domain.KindSavings,
		decimal.NewFromInt(1000),
	)
}

func TestCreate(t *testing.T) {
	owner := randompkg.Owner()
	acc := randomAccount(owner)
	balance := decimal.NewFromInt(1000)

	testCases := []struct {
		name       string
		kind       string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name: "OK",
			kind: "savings",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq("savings"), gomock.Eq(owner), gomock.Eq(balance)).
					Times(1).
					Return(acc, nil)
			},
		},
		{
			name: "UnknownKind",
			kind: "loan",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq("loan"), gomock.Eq(owner), gomock.Any()).
					Times(1).
					Return(nil, domain.ErrUnknownAccountKind)
			},
			wantErr: domain.ErrUnknownAccountKind,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, NewMockBank(ctrl))

			got, err := s.Create(context.Background(), owner, tc.kind, balance)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)

				return
			}

			require.NoError(t, err)
			require.Equal(t, acc.Snapshot(), got)
		})
	}
}

func TestGetAndHistory(t *testing.T) {
	owner := randompkg.Owner()
	acc := randomAccount(owner)
	require.NoError(t, acc.Deposit(decimal.NewFromInt(5), 1))

	testCases := []struct {
		name       string
		username   string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:     "OK",
			username: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(2).Return(acc, nil)
			},
		},
		{
			name:     "NotFound",
			username: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(2).Return(nil, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:     "InvalidOwner",
			username: owner + "x",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(2).Return(acc, nil)
			},
			wantErr: domain.ErrInvalidOwner,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, NewMockBank(ctrl))
			ctx := context.Background()

			gotAccount, err := s.Get(ctx, tc.username, acc.ID())
			require.ErrorIs(t, err, tc.wantErr)

			gotHistory, historyErr := s.History(ctx, tc.username, acc.ID())
			require.ErrorIs(t, historyErr, tc.wantErr)

			if tc.wantErr != nil {
				require.Empty(t, gotAccount)
				require.Nil(t, gotHistory)

				return
			}

			require.Equal(t, acc.Snapshot(), gotAccount)
			require.Equal(t, acc.History(), gotHistory)
		})
	}
}

func TestList(t *testing.T) {
	owner := randompkg.Owner()
	accounts := []*account.Account{randomAccount(owner), randomAccount(owner)}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(owner), gomock.Eq(int32(5)), gomock.Eq(int32(10))).
		Times(1).
		Return(accounts, nil)
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(owner), gomock.Any(), gomock.Any()).
		Times(1).
		Return(nil, errorspkg.ErrInternal)

	s := New(repo, NewMockBank(ctrl))

	got, err := s.List(context.Background(), owner, 5, 3)
	require.NoError(t, err)
	require.Equal(t, []domain.Account{accounts[0].Snapshot(), accounts[1].Snapshot()}, got)

	got, err = s.List(context.Background(), owner, 5, 1)
	require.ErrorIs(t, err, errorspkg.ErrInternal)
	require.Nil(t, got)
}

func TestMovements(t *testing.T) {
	owner := randompkg.Owner()
	amount := decimal.NewFromInt(100)

	testCases := []struct {
		name       string
		username   string
		withdraw   bool
		buildStubs func(repo *MockRepo, bank *MockBank, acc *account.Account)
		wantTxID   int64
		wantErr    error
	}{
		{
			name:     "DepositOK",
			username: owner,
			buildStubs: func(repo *MockRepo, bank *MockBank, acc *account.Account) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(1).Return(acc, nil)
				bank.EXPECT().Deposit(gomock.Any(), gomock.Eq(acc), gomock.Eq(amount)).Times(1).Return(int64(7), nil)
			},
			wantTxID: 7,
		},
		{
			name:     "WithdrawOK",
			username: owner,
			withdraw: true,
			buildStubs: func(repo *MockRepo, bank *MockBank, acc *account.Account) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(1).Return(acc, nil)
				bank.EXPECT().Withdraw(gomock.Any(), gomock.Eq(acc), gomock.Eq(amount)).Times(1).Return(int64(8), nil)
			},
			wantTxID: 8,
		},
		{
			name:     "WithdrawInsufficientFunds",
			username: owner,
			withdraw: true,
			buildStubs: func(repo *MockRepo, bank *MockBank, acc *account.Account) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(1).Return(acc, nil)
				bank.EXPECT().Withdraw(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(int64(9), domain.ErrInsufficientFunds)
			},
			wantTxID: 9,
			wantErr:  domain.ErrInsufficientFunds,
		},
		{
			name:     "DepositInvalidOwner",
			username: "intruder",
			buildStubs: func(repo *MockRepo, bank *MockBank, acc *account.Account) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(acc.ID())).Times(1).Return(acc, nil)
				bank.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidOwner,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			acc := randomAccount(owner)
			repo := NewMockRepo(ctrl)
			bank := NewMockBank(ctrl)
			tc.buildStubs(repo, bank, acc)

			s := New(repo, bank)

			var (
				got domain.MovementResult
				err error
			)

			if tc.withdraw {
				got, err = s.Withdraw(context.Background(), tc.username, acc.ID(), amount)
			} else {
				got, err = s.Deposit(context.Background(), tc.username, acc.ID(), amount)
			}

			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.wantTxID, got.TxID)

			if tc.wantErr == nil {
				require.Equal(t, acc.Snapshot(), got.Account)
			}
		})
	}
}
