// Package account implements the account entity and its ledger.
package account

import (
	"sync"
	"time"

	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/shopspring/decimal"
)

// Ledger messages recorded with each transaction.
const (
	msgDepositCompleted  = "Deposit completed"
	msgWithdrawCompleted = "Withdraw completed"
	msgInvalidAmount     = "Invalid amount"
	msgInsufficientFunds = "Insufficient funds"
)

// Account holds a balance and the append-only log of every movement attempt.
//
// Deposit, Withdraw and TransferTo are the only mutators of the balance and the log.
// All methods are safe for concurrent use.
type Account struct {
	id        int64
	owner     string
	kind      domain.AccountKind
	createdAt time.Time

	mu      sync.Mutex
	balance decimal.Decimal
	txs     []domain.Transaction
}

// New returns an account with the given opening balance and an empty ledger.
// Use accountfactory to get validated construction.
func New(id int64, owner string, kind domain.AccountKind, initialBalance decimal.Decimal) *Account {
	return &Account{
		id:        id,
		owner:     owner,
		kind:      kind,
		createdAt: time.Now().UTC(),
		balance:   initialBalance,
	}
}

// ID returns the account id.
func (a *Account) ID() int64 { return a.id }

// Owner returns the display name of the owner.
func (a *Account) Owner() string { return a.owner }

// Kind returns the account kind.
func (a *Account) Kind() domain.AccountKind { return a.kind }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// History returns a copy of the ledger in insertion order.
func (a *Account) History() []domain.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.Transaction, len(a.txs))
	copy(out, a.txs)

	return out
}

// Snapshot returns a read-only view of the account.
func (a *Account) Snapshot() domain.Account {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snapshot()
}

func (a *Account) snapshot() domain.Account {
	return domain.Account{
		ID:        a.id,
		Owner:     a.owner,
		Kind:      a.kind,
		Balance:   a.balance,
		CreatedAt: a.createdAt,
	}
}

// Deposit increases the balance by amount. A non-positive amount fails with
// domain.ErrInvalidAmount. The attempt is recorded either way.
func (a *Account) Deposit(amount decimal.Decimal, txID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.deposit(amount, txID)
}

// Withdraw decreases the balance by amount. It fails with domain.ErrInvalidAmount
// for a non-positive amount and with domain.ErrInsufficientFunds when amount exceeds
// the balance. The attempt is recorded either way and a failure leaves the balance unchanged.
func (a *Account) Withdraw(amount decimal.Decimal, txID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.withdraw(amount, txID)
}

// tieMu serializes transfers between distinct accounts that share an id.
var tieMu sync.Mutex

// TransferTo withdraws amount from a and deposits it to target, both legs under txID.
// If the withdraw leg fails the deposit leg is never attempted. A nil target fails with
// domain.ErrAccountNotFound and a itself with domain.ErrSameAccount, neither touching a ledger.
func (a *Account) TransferTo(target *Account, amount decimal.Decimal, txID int64) error {
	if target == nil {
		return domain.ErrAccountNotFound
	}

	if target == a {
		return domain.ErrSameAccount
	}

	// Lock in id order so that concurrent opposite transfers cannot deadlock.
	first, second := a, target
	switch {
	case target.id < a.id:
		first, second = target, a
	case target.id == a.id:
		tieMu.Lock()
		defer tieMu.Unlock()
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := a.withdraw(amount, txID); err != nil {
		return err
	}

	return target.deposit(amount, txID)
}

func (a *Account) deposit(amount decimal.Decimal, txID int64) error {
	if !amount.IsPositive() {
		a.record(txID, domain.TxDeposit, amount, domain.TxFailed, msgInvalidAmount)
		return domain.ErrInvalidAmount
	}

	a.balance = a.balance.Add(amount)
	a.record(txID, domain.TxDeposit, amount, domain.TxSuccess, msgDepositCompleted)

	return nil
}

func (a *Account) withdraw(amount decimal.Decimal, txID int64) error {
	if !amount.IsPositive() {
		a.record(txID, domain.TxWithdraw, amount, domain.TxFailed, msgInvalidAmount)
		return domain.ErrInvalidAmount
	}

	if amount.GreaterThan(a.balance) {
		a.record(txID, domain.TxWithdraw, amount, domain.TxFailed, msgInsufficientFunds)
		return domain.ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)
	a.record(txID, domain.TxWithdraw, amount, domain.TxSuccess, msgWithdrawCompleted)

	return nil
}

func (a *Account) record(txID int64, kind domain.TxKind, amount decimal.Decimal, status domain.TxStatus, msg string) {
	a.txs = append(a.txs, domain.Transaction{
		ID:        txID,
		Kind:      kind,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
		Status:    status,
		Message:   msg,
	})
}
