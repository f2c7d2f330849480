// Package accountfactory builds account variants from a kind name.
package accountfactory

import (
	"fmt"
	"strings"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/shopspring/decimal"
)

// ParseKind matches name against the supported kinds, ignoring case and surrounding spaces.
func ParseKind(name string) (domain.AccountKind, error) {
	normalized := domain.AccountKind(strings.ToLower(strings.TrimSpace(name)))

	for _, k := range domain.AccountKinds {
		if k == normalized {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", domain.ErrUnknownAccountKind, name)
}

// IsSupportedKind reports whether name resolves to a known kind.
func IsSupportedKind(name string) bool {
	_, err := ParseKind(name)
	return err == nil
}

// Create returns the account variant named by kind.
func Create(kind string, id int64, owner string, initialBalance decimal.Decimal) (*account.Account, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	if initialBalance.IsNegative() {
		return nil, domain.ErrNegativeInitialBalance
	}

	return account.New(id, owner, k, initialBalance), nil
}
