package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a zero, negative or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the account balance does not cover the withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameAccount indicates a transfer whose target is its own source.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)

// TxKind is the kind of ledger movement.
type TxKind string

// Ledger movement kinds. A transfer is recorded as one leg of each.
const (
	TxDeposit  TxKind = "deposit"
	TxWithdraw TxKind = "withdraw"
)

// TxStatus is the outcome of a ledger movement attempt.
type TxStatus string

// Transaction outcomes.
const (
	TxSuccess TxStatus = "success"
	TxFailed  TxStatus = "failed"
)

// Transaction is a single entry of an account ledger. Failed attempts are recorded too.
type Transaction struct {
	ID        int64           `json:"id"`
	Kind      TxKind          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Status    TxStatus        `json:"status"`
	Message   string          `json:"message"`
}

// CreateTransferParams is the input data for the transfer operation.
type CreateTransferParams struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// TransferResult is the result of the transfer operation.
type TransferResult struct {
	TxID        int64   `json:"tx_id"`
	FromAccount Account `json:"from_account"`
	ToAccount   Account `json:"to_account"`
}

// MovementResult is the result of a deposit or a withdrawal.
type MovementResult struct {
	TxID    int64   `json:"tx_id"`
	Account Account `json:"account"`
}
