package tokenpkg

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Issuer is stamped on every token this package creates and required on every token it verifies.
const Issuer = "mini-bank"

var (
	// ErrInvalidToken indicates that the token is malformed, has a wrong signature or a foreign issuer.
	ErrInvalidToken = errors.New("token is invalid")
	// ErrExpiredToken indicates that the token is expired.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidKeySize indicates a symmetric key of unusable length.
	ErrInvalidKeySize = errors.New("invalid key size")
)

// Payload contains the payload data of the token.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Issuer    string    `json:"issuer"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

// NewPayload creates a new token payload with a specific username and duration.
func NewPayload(username string, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	payload := &Payload{
		ID:        tokenID,
		Username:  username,
		Issuer:    Issuer,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}

	return payload, nil
}

// Valid checks the issuer and the expiry of the payload.
func (p *Payload) Valid() error {
	if p.Issuer != Issuer {
		return ErrInvalidToken
	}

	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}

	return nil
}
