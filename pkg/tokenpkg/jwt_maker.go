package tokenpkg

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const minSecretKeySize = 32

// JWTMaker is a JSON Web Token maker signing with HS256 only.
type JWTMaker struct {
	secretKey []byte
	parser    *jwt.Parser
}

// NewJWTMaker creates a new JWTMaker.
func NewJWTMaker(secretKey string) (Maker, error) {
	if len(secretKey) < minSecretKeySize {
		return nil, fmt.Errorf("%w: must be at least %d characters", ErrInvalidKeySize, minSecretKeySize)
	}

	return &JWTMaker{
		secretKey: []byte(secretKey),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// CreateToken creates a new token for a specific username and duration.
func (m *JWTMaker) CreateToken(username string, duration time.Duration) (string, *Payload, error) {
	payload, err := NewPayload(username, duration)
	if err != nil {
		return "", nil, err
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(m.secretKey)
	if err != nil {
		return "", nil, err
	}

	return token, payload, nil
}

// VerifyToken checks the signature and the payload of the token.
func (m *JWTMaker) VerifyToken(token string) (*Payload, error) {
	var payload Payload

	_, err := m.parser.ParseWithClaims(token, &payload, func(*jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	return &payload, nil
}
