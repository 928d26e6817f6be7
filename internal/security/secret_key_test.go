package security

import (
	"strings"
	"testing"
)

func TestGenerateSecretKey(t *testing.T) {
	key, err := GenerateSecretKey(48)
	if err != nil {
		t.Fatalf("generate secret key: %v", err)
	}
	if len(key) != 48 {
		t.Fatalf("expected 48 characters, got %d", len(key))
	}
	for _, char := range key {
		if !strings.ContainsRune(secretKeyAlphabet, char) {
			t.Fatalf("unexpected character %q in %q", char, key)
		}
	}

	other, err := GenerateSecretKey(48)
	if err != nil {
		t.Fatalf("generate second key: %v", err)
	}
	if key == other {
		t.Fatal("expected two generated keys to differ")
	}
}

func TestGenerateSecretKeyRejectsShortLength(t *testing.T) {
	if _, err := GenerateSecretKey(MinSecretKeyLength - 1); err == nil {
		t.Fatal("expected error for a key shorter than the minimum")
	}
}
