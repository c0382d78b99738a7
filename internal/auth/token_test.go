package auth

import (
	"strings"
	"testing"
)

func TestGenerateSecret(t *testing.T) {
	tm := NewTokenManager()

	plain, digest, err := tm.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() = %v, want nil", err)
	}

	if len(plain) != secretHexLen {
		t.Errorf("secret length: got %d, want %d", len(plain), secretHexLen)
	}
	if plain == digest {
		t.Error("digest must not equal the plaintext secret")
	}

	// The stored digest must be recomputable from the plaintext
	recomputed, err := tm.DigestSecret(plain)
	if err != nil {
		t.Fatalf("DigestSecret() = %v, want nil", err)
	}
	if recomputed != digest {
		t.Errorf("digest mismatch: got %s, want %s", recomputed, digest)
	}
}

func TestGenerateSecret_Unique(t *testing.T) {
	tm := NewTokenManager()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		plain, _, err := tm.GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret() = %v, want nil", err)
		}
		if seen[plain] {
			t.Fatal("generated duplicate secret")
		}
		seen[plain] = true
	}
}

func TestDigestSecret_MalformedInput(t *testing.T) {
	tm := NewTokenManager()

	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"too short", "abc123"},
		{"too long", strings.Repeat("a", secretHexLen+2)},
		{"non-hex characters", strings.Repeat("z", secretHexLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.DigestSecret(tt.secret); err != ErrMalformedToken {
				t.Errorf("DigestSecret(%q) = %v, want ErrMalformedToken", tt.secret, err)
			}
		})
	}
}
