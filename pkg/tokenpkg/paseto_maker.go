package tokenpkg

import (
	"fmt"
	"time"

	"github.com/aead/chacha20poly1305"
	"github.com/o1egl/paseto"
)

// PasetoMaker is a PASETO v2 local token maker. The issuer travels in the
// authenticated footer as well as in the payload.
type PasetoMaker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

// NewPasetoMaker creates a new PasetoMaker. The key must be exactly chacha20poly1305.KeySize long.
func NewPasetoMaker(symmetricKey string) (Maker, error) {
	if len(symmetricKey) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: must be exactly %d characters", ErrInvalidKeySize, chacha20poly1305.KeySize)
	}

	return &PasetoMaker{
		paseto:       paseto.NewV2(),
		symmetricKey: []byte(symmetricKey),
	}, nil
}

// CreateToken creates a new token for a specific username and duration.
func (m *PasetoMaker) CreateToken(username string, duration time.Duration) (string, *Payload, error) {
	payload, err := NewPayload(username, duration)
	if err != nil {
		return "", nil, err
	}

	token, err := m.paseto.Encrypt(m.symmetricKey, payload, Issuer)
	if err != nil {
		return "", nil, err
	}

	return token, payload, nil
}

// VerifyToken decrypts the token and validates its footer and payload.
func (m *PasetoMaker) VerifyToken(token string) (*Payload, error) {
	var (
		payload Payload
		footer  string
	)

	if err := m.paseto.Decrypt(token, m.symmetricKey, &payload, &footer); err != nil {
		return nil, ErrInvalidToken
	}

	if footer != Issuer {
		return nil, ErrInvalidToken
	}

	if err := payload.Valid(); err != nil {
		return nil, err
	}

	return &payload, nil
}
