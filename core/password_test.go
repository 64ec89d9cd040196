package core

import (
	"encoding/base64"
	"strings"
	"testing"
)

// Requirement: verify(P, hash(P)) is true; verify(P', hash(P)) is false for P' != P.
func TestPBKDF2_HashVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{name: "correct password", password: "secret1", attempt: "secret1", want: true},
		{name: "wrong password", password: "secret1", attempt: "wrong", want: false},
		{name: "case sensitive", password: "Secret1", attempt: "secret1", want: false},
		{name: "unicode password", password: "pässwörd", attempt: "pässwörd", want: true},
		{name: "long password", password: strings.Repeat("a", 255), attempt: strings.Repeat("a", 255), want: true},
	}

	hasher := NewPBKDF2()

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			stored, err := hasher.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			// Act
			valid, err := hasher.Verify(test.attempt, stored)

			// Assert
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if valid != test.want {
				t.Errorf("Verify() = %v, want %v", valid, test.want)
			}
		})
	}
}

// Requirement: stored format is base64(salt) + ":" + base64(digest).
func TestPBKDF2_StoredFormat(t *testing.T) {
	hasher := NewPBKDF2()

	stored, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		t.Fatalf("stored hash has %d parts, want 2", len(parts))
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("salt is not valid base64: %v", err)
	}
	if len(salt) != hasher.SaltLength {
		t.Errorf("salt length = %d, want %d", len(salt), hasher.SaltLength)
	}

	digest, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("digest is not valid base64: %v", err)
	}
	if len(digest) != hasher.KeyLength {
		t.Errorf("digest length = %d, want %d", len(digest), hasher.KeyLength)
	}
}

func TestPBKDF2_SaltVariesPerHash(t *testing.T) {
	hasher := NewPBKDF2()

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestPBKDF2_VerifyMalformedStored(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{name: "empty", stored: ""},
		{name: "no separator", stored: "justonepart"},
		{name: "empty salt", stored: ":c29tZWRpZ2VzdA=="},
		{name: "empty digest", stored: "c29tZXNhbHQ=:"},
		{name: "invalid base64 salt", stored: "!!notbase64!!:c29tZWRpZ2VzdA=="},
		{name: "invalid base64 digest", stored: "c29tZXNhbHQ=:!!notbase64!!"},
	}

	hasher := NewPBKDF2()

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			valid, err := hasher.Verify("secret1", test.stored)
			if err == nil {
				t.Error("Verify() expected error for malformed stored hash")
			}
			if valid {
				t.Error("Verify() = true for malformed stored hash")
			}
		})
	}
}
