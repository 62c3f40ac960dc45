package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ResetTokenLength is the size of password reset tokens.
const ResetTokenLength = 64

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateToken returns a random alphanumeric string read from crypto/rand.
func GenerateToken(length int) (string, error) {
	if length <= 0 {
		length = ResetTokenLength
	}

	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}

	return string(buf), nil
}
