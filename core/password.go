package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

type PasswordHandler interface {
	Hash(password string) (string, error)
	Verify(password, stored string) (bool, error)
}

// Ensure PBKDF2 implements PasswordHandler
var _ PasswordHandler = (*PBKDF2)(nil)

// PBKDF2 derives password hashes with PBKDF2 over SHA-256.
//
// Stored format: base64(salt) + ":" + base64(digest), standard encoding.
type PBKDF2 struct {
	Iterations int
	SaltLength int // Length of random salt. Ignored during Verify()
	KeyLength  int
}

func NewPBKDF2() *PBKDF2 {
	return &PBKDF2{
		Iterations: 100_000,
		SaltLength: 16,
		KeyLength:  32,
	}
}

func (p *PBKDF2) Hash(password string) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, p.Iterations, p.KeyLength, sha256.New)

	encoded := base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(digest)
	return encoded, nil
}

func (p *PBKDF2) Verify(password, stored string) (bool, error) {
	salt, digest, err := decodeStoredHash(stored)
	if err != nil {
		return false, err
	}

	// Recompute with the stored salt; parameters are fixed rather than
	// encoded alongside the hash.
	computed := pbkdf2.Key([]byte(password), salt, p.Iterations, len(digest), sha256.New)

	return subtle.ConstantTimeCompare(digest, computed) == 1, nil
}

func decodeStoredHash(stored string) (salt, digest []byte, err error) {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil, errors.New("invalid hash format")
	}

	salt, err = base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}

	digest, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid digest encoding: %w", err)
	}

	return salt, digest, nil
}
