// Package randompkg generates random users, accounts and amounts for tests.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-petr/mini-bank/internal/domain"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn returns a uniform random integer in [0, n) read from crypto/rand.
func Intn(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(err)
	}

	return v.Int64()
}

// IntBetween returns a random integer between min and max inclusive.
func IntBetween(min, max int64) int64 {
	return min + Intn(max-min+1)
}

// String returns a random lowercase string of length n.
func String(n int) string {
	var sb strings.Builder

	sb.Grow(n)

	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[Intn(int64(len(alphabet)))])
	}

	return sb.String()
}

// Owner returns a random alphanumeric username.
func Owner() string {
	return String(6)
}

// MoneyAmountBetween returns a random amount with cent precision between min and max whole units.
func MoneyAmountBetween(min, max int64) decimal.Decimal {
	return decimal.New(IntBetween(min*100, max*100), -2)
}

// AccountKind returns the name of a random supported account kind.
func AccountKind() string {
	return string(domain.AccountKinds[Intn(int64(len(domain.AccountKinds)))])
}
