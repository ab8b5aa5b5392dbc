package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32
	saltBytes        = 16

	specialChars = "!@#$%^&*()-_=+[]{};:,.<>?/|"

	minPasswordLen = 8
)

// HashPassword derives a credential hash for password under a freshly
// generated random salt. The hash and salt are hex-encoded and must be
// stored together; one is meaningless without the other.
func HashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	return HashPasswordWithSalt(password, salt), salt, nil
}

// HashPasswordWithSalt derives the PBKDF2-HMAC-SHA256 hash of password
// under the given salt. Deterministic for a fixed (password, salt) pair.
func HashPasswordWithSalt(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the hash of candidate under salt and
// compares it to storedHash in constant time.
func VerifyPassword(storedHash, candidate, salt string) bool {
	computed := HashPasswordWithSalt(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// MeetsPolicy reports whether password satisfies the registration
// strength requirements. Login deliberately does not apply this check
// so legacy weak accounts can still authenticate pending a reset.
func MeetsPolicy(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}
	var upper, lower, digit, special bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(specialChars, c):
			special = true
		}
	}
	return upper && lower && digit && special
}
