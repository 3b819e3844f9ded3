// Package security holds small crypto/rand-backed helpers.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// RandomString draws the requested number of characters uniformly from the
// alphabet. Each position is a fresh modular draw below the alphabet size, so
// no byte range is over-represented regardless of the alphabet length.
func RandomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	var builder strings.Builder
	builder.Grow(length)
	for drawn := 0; drawn < length; drawn++ {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[position.Int64()])
	}
	return builder.String(), nil
}
