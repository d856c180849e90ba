package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns plaintext credentials into opaque bcrypt digests. Plaintext is
// never stored.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of the plaintext
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(digest), nil
}

// Compare reports whether the plaintext matches the stored digest
func (h *Hasher) Compare(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
