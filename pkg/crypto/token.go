package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const (
	// DefaultTokenLength is the entropy of a session token in bytes.
	DefaultTokenLength = 32 // 256 bits
)

// GenerateToken produces a URL-safe random token. This is the raw value
// handed to the client; storage only ever sees its hash.
func GenerateToken(byteLength ...int) (string, error) {
	length := DefaultTokenLength
	if len(byteLength) > 0 && byteLength[0] > 0 {
		length = byteLength[0]
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// HashToken maps a raw token to the identifier used as the session row key.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
