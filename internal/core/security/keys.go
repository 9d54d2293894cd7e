package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// KeyPrefix marks keys minted by this service.
const KeyPrefix = "ob_live_"

// GenerateAPIKey creates a new key and its SHA-256 hash. The raw key goes to
// the user exactly once; only the hash is stored.
func GenerateAPIKey() (string, string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}

	realKey := fmt.Sprintf("%s%s", KeyPrefix, hex.EncodeToString(bytes))

	hash := sha256.Sum256([]byte(realKey))
	hashedKey := hex.EncodeToString(hash[:])

	return realKey, hashedKey, nil
}

// ValidateKey checks a provided key against a stored hash.
func ValidateKey(providedKey, storedHash string) bool {
	hash := sha256.Sum256([]byte(providedKey))
	return hex.EncodeToString(hash[:]) == storedHash
}
