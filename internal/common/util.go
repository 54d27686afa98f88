package common

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// RandomString returns n characters drawn uniformly from alphabet using
// crypto/rand.
func RandomString(n int, alphabet string) (string, error) {
	if n < 0 {
		return "", errors.New("negative length")
	}
	if alphabet == "" {
		return "", errors.New("empty alphabet")
	}

	size := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx.Int64()]
	}

	return string(b), nil
}
