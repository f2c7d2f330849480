// Package tokenpkg creates and verifies access tokens.
package tokenpkg

import (
	"fmt"
	"time"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username and duration.
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the maker named by tokenType.
func New(tokenType, symmetricKey string) (Maker, error) {
	switch tokenType {
	case "paseto", "":
		return NewPasetoMaker(symmetricKey)
	case "jwt":
		return NewJWTMaker(symmetricKey)
	}

	return nil, fmt.Errorf("unsupported token type %q", tokenType)
}
