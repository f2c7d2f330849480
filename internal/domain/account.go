// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUnknownAccountKind indicates that the factory has no variant for the requested kind.
	ErrUnknownAccountKind = errors.New("unknown account kind")
	// ErrNegativeInitialBalance indicates that the account was requested with a negative opening balance.
	ErrNegativeInitialBalance = errors.New("negative initial balance")
	// ErrInvalidOwner indicates that the user does not own the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
)

// AccountKind labels an account variant. It carries no behaviour.
type AccountKind string

// Supported account kinds.
const (
	KindSavings  AccountKind = "savings"
	KindChecking AccountKind = "checking"
	KindBusiness AccountKind = "business"
)

// AccountKinds holds all the supported kinds in display order.
var AccountKinds = []AccountKind{
	KindSavings,
	KindChecking,
	KindBusiness,
}

// Label returns the display name used in notifications.
func (k AccountKind) Label() string {
	switch k {
	case KindSavings:
		return "Savings"
	case KindChecking:
		return "Checking"
	case KindBusiness:
		return "Business"
	}

	return string(k)
}

// Account is a read-only view of an account at a point in time.
type Account struct {
	ID        int64           `json:"id"`
	Owner     string          `json:"owner"`
	Kind      AccountKind     `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}
