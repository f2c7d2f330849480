// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/go-petr/mini-bank/pkg/errorspkg"
	"github.com/go-petr/mini-bank/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{repo: ur}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:  u.Username,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// Create registers a bank customer. Only the bcrypt hash of the password is stored.
func (s *Service) Create(ctx context.Context, username, password, fullname string) (domain.UserWithoutPassword, error) {
	hashedPassword, err := passpkg.Hash(password)
	switch {
	case errors.Is(err, passpkg.ErrTooLong):
		return domain.UserWithoutPassword{}, err
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("username", username).Msg("cannot hash password")
		return domain.UserWithoutPassword{}, errorspkg.Internal(err)
	}

	created, err := s.repo.Create(ctx, domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       strings.TrimSpace(fullname),
	})
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	zerolog.Ctx(ctx).Info().Str("username", created.Username).Msg("user created")

	return NewUserWithoutPassword(created), nil
}

// CheckPassword returns the user when password matches the stored hash.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	stored, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	err = passpkg.Check(password, stored.HashedPassword)
	switch {
	case errors.Is(err, passpkg.ErrMismatch):
		l.Warn().Str("username", username).Msg("wrong password")
		return domain.UserWithoutPassword{}, domain.ErrWrongPassword
	case err != nil:
		l.Error().Err(err).Str("username", username).Msg("cannot check password")
		return domain.UserWithoutPassword{}, errorspkg.Internal(err)
	}

	return NewUserWithoutPassword(stored), nil
}
