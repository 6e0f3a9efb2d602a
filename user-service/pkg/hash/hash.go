package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password turns a plain-text password into an opaque bcrypt credential.
// The plain text is never persisted.
func Password(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored bcrypt credential.
func Verify(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
