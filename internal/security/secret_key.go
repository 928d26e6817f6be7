package security

import (
	"crypto/rand"
	"fmt"
)

// MinSecretKeyLength matches what config accepts for SECRET_KEY.
const MinSecretKeyLength = 32

const secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecretKey returns a random alphanumeric signing secret. Bytes that
// would bias the alphabet are rejected and redrawn.
func GenerateSecretKey(length int) (string, error) {
	if length < MinSecretKeyLength {
		return "", fmt.Errorf("secret key must be at least %d characters, got %d", MinSecretKeyLength, length)
	}

	limit := byte(256 - 256%len(secretKeyAlphabet))
	key := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(key) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, value := range buffer {
			if value >= limit {
				continue
			}
			key = append(key, secretKeyAlphabet[int(value)%len(secretKeyAlphabet)])
			if len(key) == length {
				break
			}
		}
	}
	return string(key), nil
}
