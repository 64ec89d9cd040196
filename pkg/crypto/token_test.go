package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"
)

func TestGenerateToken_Length(t *testing.T) {
	tests := []struct {
		name           string
		byteLength     int
		expectedLength int
	}{
		{name: "zero uses default", byteLength: 0, expectedLength: DefaultTokenLength},
		{name: "negative uses default", byteLength: -10, expectedLength: DefaultTokenLength},
		{name: "16 bytes", byteLength: 16, expectedLength: 16},
		{name: "32 bytes", byteLength: 32, expectedLength: 32},
		{name: "64 bytes", byteLength: 64, expectedLength: 64},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Act
			token, err := GenerateToken(test.byteLength)

			// Assert
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if token == "" {
				t.Error("GenerateToken() returned empty token")
			}
			// Decode to verify byte length
			decoded, err := base64.RawURLEncoding.DecodeString(token)
			if err != nil {
				t.Fatalf("failed to decode token: %v", err)
			}
			if len(decoded) != test.expectedLength {
				t.Errorf("token length = %d bytes, want %d", len(decoded), test.expectedLength)
			}
			// Verify URL-safe characters
			if strings.ContainsAny(token, "+/= ") {
				t.Errorf("token contains URL-unsafe characters: %q", token)
			}
		})
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	// Arrange
	tokens := make(map[string]bool)
	iterations := 1000

	// Act & Assert
	for i := 0; i < iterations; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("iteration %d: GenerateToken() error = %v", i, err)
		}
		if tokens[token] {
			t.Fatalf("iteration %d: duplicate token generated", i)
		}
		tokens[token] = true
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	// Arrange
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Act
	first := HashToken(token)
	second := HashToken(token)

	// Assert
	if first != second {
		t.Errorf("HashToken() not deterministic: %q != %q", first, second)
	}
	if first == token {
		t.Error("HashToken() should differ from the raw token")
	}
	// Verify hash is valid SHA256 hex
	if len(first) != 64 {
		t.Errorf("hash length = %d, want 64 (SHA256)", len(first))
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Errorf("hash is not valid hex: %v", err)
	}
}

func TestHashToken_DistinctTokensDistinctHashes(t *testing.T) {
	// Arrange
	a, _ := GenerateToken()
	b, _ := GenerateToken()

	// Assert
	if HashToken(a) == HashToken(b) {
		t.Error("distinct tokens produced the same hash")
	}
}
