package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// InviteCodeAlphabet is the character set for generated invite codes:
// uppercase letters and digits.
const InviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// InviteCode returns a random uppercase-alphanumeric code of the requested
// length. Uniqueness is the caller's concern (retry against the storage
// constraint).
func InviteCode(length int) (string, error) {
	return RandomString(length, InviteCodeAlphabet)
}

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from the given alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}
