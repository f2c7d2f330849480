// Package bank coordinates account operations, transaction numbering and notifications.
package bank

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/shopspring/decimal"
)

// Publisher broadcasts event strings to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event string) int
}

// Recorder is the logging collaborator of the bank.
type Recorder interface {
	RecordEvent(ctx context.Context, event string)
}

// Bank is the single entry point for money movements.
//
// Every call allocates the next transaction id, starting at 1. Ids are never reused,
// failed operations included. Subscribers are notified only after a successful operation;
// failures are recorded and returned to the caller.
type Bank struct {
	publisher Publisher
	recorder  Recorder
	txSeq     atomic.Int64
}

// New returns a bank publishing to p and recording to r.
func New(p Publisher, r Recorder) *Bank {
	return &Bank{
		publisher: p,
		recorder:  r,
	}
}

func (b *Bank) nextTxID() int64 {
	return b.txSeq.Add(1)
}

// LastTxID returns the most recently allocated transaction id, 0 if none.
func (b *Bank) LastTxID() int64 {
	return b.txSeq.Load()
}

// Deposit adds amount to acc and returns the transaction id used.
func (b *Bank) Deposit(ctx context.Context, acc *account.Account, amount decimal.Decimal) (int64, error) {
	txID := b.nextTxID()

	if err := acc.Deposit(amount, txID); err != nil {
		b.recorder.RecordEvent(ctx, fmt.Sprintf("tx %d: deposit %s$ to %s (id=%d) failed: %v",
			txID, amount, acc.Owner(), acc.ID(), err))

		return txID, err
	}

	b.succeeded(ctx, txID, fmt.Sprintf("Deposit %s$ to %s (%s)", amount, acc.Owner(), acc.Kind().Label()))

	return txID, nil
}

// Withdraw takes amount from acc and returns the transaction id used.
func (b *Bank) Withdraw(ctx context.Context, acc *account.Account, amount decimal.Decimal) (int64, error) {
	txID := b.nextTxID()

	if err := acc.Withdraw(amount, txID); err != nil {
		b.recorder.RecordEvent(ctx, fmt.Sprintf("tx %d: withdraw %s$ from %s (id=%d) failed: %v",
			txID, amount, acc.Owner(), acc.ID(), err))

		return txID, err
	}

	b.succeeded(ctx, txID, fmt.Sprintf("Withdraw %s$ from %s (%s)", amount, acc.Owner(), acc.Kind().Label()))

	return txID, nil
}

// Transfer moves amount from src to dst under a single transaction id.
func (b *Bank) Transfer(ctx context.Context, src, dst *account.Account, amount decimal.Decimal) (int64, error) {
	txID := b.nextTxID()

	if err := src.TransferTo(dst, amount, txID); err != nil {
		target := "<nil>"
		if dst != nil {
			target = fmt.Sprintf("%s (id=%d)", dst.Owner(), dst.ID())
		}

		b.recorder.RecordEvent(ctx, fmt.Sprintf("tx %d: transfer %s$ from %s (id=%d) to %s failed: %v",
			txID, amount, src.Owner(), src.ID(), target, err))

		return txID, err
	}

	b.succeeded(ctx, txID, fmt.Sprintf("Transfer %s$ from %s to %s", amount, src.Owner(), dst.Owner()))

	return txID, nil
}

func (b *Bank) succeeded(ctx context.Context, txID int64, event string) {
	b.recorder.RecordEvent(ctx, fmt.Sprintf("tx %d: %s", txID, event))
	b.publisher.Publish(ctx, event)
}
