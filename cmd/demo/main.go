// Package main walks through a short banking session: two accounts, three subscribers
// and a handful of operations routed through the bank.
package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/go-petr/mini-bank/internal/account"
	"github.com/go-petr/mini-bank/internal/accountfactory"
	"github.com/go-petr/mini-bank/internal/bank"
	"github.com/go-petr/mini-bank/internal/middleware"
	"github.com/go-petr/mini-bank/internal/notifybus"
	"github.com/go-petr/mini-bank/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)
	ctx := logger.WithContext(context.Background())

	bus := notifybus.New()
	analytics := notifybus.NewAnalyticsSubscriber(logger)

	bus.Subscribe(notifybus.NewLogSubscriber(logger))
	bus.Subscribe(notifybus.NewEmailSubscriber(logger))
	bus.Subscribe(analytics)

	b := bank.New(bus, bank.NewLogRecorder(logger))

	alice, err := accountfactory.Create("Savings", 1, "Alice", decimal.NewFromInt(1000))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open account")
	}

	bob, err := accountfactory.Create("Checking", 2, "Bob", decimal.NewFromInt(300))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open account")
	}

	steps := []struct {
		name string
		run  func() (int64, error)
	}{
		{"deposit", func() (int64, error) { return b.Deposit(ctx, alice, decimal.NewFromInt(200)) }},
		{"withdraw", func() (int64, error) { return b.Withdraw(ctx, alice, decimal.NewFromInt(150)) }},
		{"transfer", func() (int64, error) { return b.Transfer(ctx, alice, bob, decimal.NewFromInt(250)) }},
		{"withdraw", func() (int64, error) { return b.Withdraw(ctx, bob, decimal.NewFromInt(100)) }},
		{"withdraw", func() (int64, error) { return b.Withdraw(ctx, bob, decimal.NewFromInt(10000)) }},
	}

	err = withStorage(logger, func() error {
		for _, s := range steps {
			txID, err := s.run()
			if err != nil {
				logger.Warn().Err(err).Int64("tx_id", txID).Str("step", s.name).Msg("operation rejected")
			}
		}

		return nil
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("session aborted")
	}

	for _, acc := range []*account.Account{alice, bob} {
		logger.Info().
			Str("owner", acc.Owner()).
			Str("kind", acc.Kind().Label()).
			Str("balance", acc.Balance().String()).
			Int("transactions", len(acc.History())).
			Msg("final balance")
	}

	logger.Info().Interface("operations", analytics.Counts()).Msg("analytics")
}

// withStorage runs batch between opening and closing the transaction storage. An error or
// panic escaping batch is logged before the storage closes and returned to the caller.
func withStorage(l zerolog.Logger, batch func() error) (err error) {
	l.Info().Msg("opening transaction storage")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("batch panic: %v", r)
		}

		if err != nil {
			l.Error().Err(err).Msg("storage error")
		}

		l.Info().Msg("closing transaction storage")
	}()

	return batch()
}
