package auth

import (
	"encoding/hex"
	"testing"
)

func TestHashPassword_Deterministic(t *testing.T) {
	t.Parallel()

	a := HashPassword("hunter2", "salt-1")
	b := HashPassword("hunter2", "salt-1")
	if a != b {
		t.Fatalf("hash must be deterministic: %q vs %q", a, b)
	}
	if HashPassword("hunter2", "salt-2") == a {
		t.Fatalf("different salts must produce different hashes")
	}
	if HashPassword("hunter3", "salt-1") == a {
		t.Fatalf("different passwords must produce different hashes")
	}
}

func TestHashPassword_HexSHA256Shape(t *testing.T) {
	t.Parallel()

	h := HashPassword("p", "s")
	raw, err := hex.DecodeString(h)
	if err != nil {
		t.Fatalf("hash is not hex: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32-byte digest, got %d", len(raw))
	}
}

func TestNewSalt_UniquePerCall(t *testing.T) {
	t.Parallel()

	a, b := NewSalt(), NewSalt()
	if a == b {
		t.Fatalf("salts must be unique per call")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a))
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	salt := NewSalt()
	stored := HashPassword("correct horse", salt)

	if !CheckPassword("correct horse", salt, stored) {
		t.Fatalf("correct password must verify")
	}
	if CheckPassword("wrong horse", salt, stored) {
		t.Fatalf("wrong password must not verify")
	}
	if CheckPassword("correct horse", NewSalt(), stored) {
		t.Fatalf("wrong salt must not verify")
	}
}
