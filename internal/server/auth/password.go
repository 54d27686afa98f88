package auth

import (
	"github.com/dmitrijs2005/authservice/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const (
	generatedPasswordLength = 16
	passwordAlphabet        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// PasswordHasher wraps bcrypt with a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher; costs below bcrypt.MinCost fall back
// to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// HashPassword salts each call, so equal inputs give different hashes.
func (h *PasswordHasher) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword fails closed: an empty or malformed hash never matches.
func (h *PasswordHasher) VerifyPassword(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GeneratePassword returns 16 random characters from ASCII letters, digits
// and punctuation.
func GeneratePassword() (string, error) {
	return common.RandomString(generatedPasswordLength, passwordAlphabet)
}
