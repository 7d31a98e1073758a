package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewSalt returns a fresh random salt. Each user gets their own; salts are
// never reused across users.
func NewSalt() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HashPassword returns hex(SHA-256(password || salt)). Deterministic given
// (password, salt): the same function runs at registration and at login.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// CheckPassword compares a candidate password against a stored hash in
// constant time.
func CheckPassword(password, salt, storedHash string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}
