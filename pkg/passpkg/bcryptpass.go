// Package passpkg hashes and checks user passwords with bcrypt.
package passpkg

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past the first 72 bytes.
const maxPasswordBytes = 72

var (
	// ErrTooLong indicates a password bcrypt would silently truncate.
	ErrTooLong = errors.New("password is longer than 72 bytes")
	// ErrMismatch indicates that the password does not match the hash.
	ErrMismatch = errors.New("password does not match")
)

// Cost is the bcrypt work factor used by Hash.
var Cost = bcrypt.DefaultCost

// Hash returns the bcrypt hash of the password.
func Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrTooLong
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// Check returns ErrMismatch when password does not produce hashedPassword.
func Check(password, hashedPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	}

	return fmt.Errorf("failed to check password: %w", err)
}
