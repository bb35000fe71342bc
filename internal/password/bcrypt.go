// Package password provides one-way password hashing.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vmanager/vehicle-manager-server/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements PasswordHasher with the bcrypt KDF. Each hash carries
// its own random salt.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher. Non-positive cost falls back to the
// library default.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash derives a salted hash from the plaintext password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
