// Package fieldcrypt encrypts individual text fields with a user-held
// passphrase before they cross the network boundary. The server stores and
// returns only the opaque encoded form and never sees the passphrase.
package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations  = 100_000
	saltLength  = 16
	nonceLength = 12
	keyLength   = 32 // 256-bit AES key
)

// deriveKey stretches the passphrase into an AES-256 key. The salt is fresh
// per encryption call, so equal plaintexts never share a key.
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keyLength, sha256.New)
}

// Encrypt seals a plaintext field under the passphrase.
//
// Output layout: base64(salt(16) || nonce(12) || ciphertext+tag), standard
// encoding. Empty plaintext is passed through unchanged; an unset field
// stays unset rather than turning into ciphertext.
func Encrypt(plaintext, passphrase string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	combined := make([]byte, 0, saltLength+nonceLength+len(sealed))
	combined = append(combined, salt...)
	combined = append(combined, nonce...)
	combined = append(combined, sealed...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Decrypt reverses Encrypt.
//
// Fail-soft: a wrong passphrase (tag mismatch), malformed encoding, or
// truncated input returns the encoded input unchanged instead of an error.
// A caller holding the wrong passphrase sees ciphertext-looking text, which
// is recoverable; do not turn this into a returned error, downstream callers
// depend on getting a string back.
func Decrypt(encoded, passphrase string) string {
	plaintext, err := decrypt(encoded, passphrase)
	if err != nil {
		return encoded
	}
	return plaintext
}

func decrypt(encoded, passphrase string) (string, error) {
	if encoded == "" {
		return "", errors.New("empty input")
	}

	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid encoding: %w", err)
	}
	if len(combined) <= saltLength+nonceLength {
		return "", errors.New("truncated input")
	}

	salt := combined[:saltLength]
	nonce := combined[saltLength : saltLength+nonceLength]
	sealed := combined[saltLength+nonceLength:]

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}

// ValidatePasskey reports whether the passphrase actually decrypts a known
// sample. It distinguishes a real decryption from the fail-soft echo, so it
// is the one place passphrase correctness is signaled to the user.
func ValidatePasskey(sampleCiphertext, passphrase string) bool {
	_, err := decrypt(sampleCiphertext, passphrase)
	return err == nil
}
