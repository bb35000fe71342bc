package model

// PasswordHasher hashes plaintext passwords and verifies them against
// stored hashes. Implementations must be one-way and salted.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
