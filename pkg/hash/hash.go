// Package hash is the one-way password hash primitive: bcrypt with a
// randomized salt and a configurable cost factor. Plaintext passwords are
// never stored; comparison is delegated to bcrypt and is constant-time
// relative to the hash.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password hashes plain with the given bcrypt cost. The salt is generated
// per call, so hashing the same password twice yields different hashes.
func Password(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
func Verify(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
