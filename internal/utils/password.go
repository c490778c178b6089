package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const digestLen = 32

// NewSalt returns a fresh random salt, generated once per user at creation
// and never reused.
func NewSalt() string {
	return uuid.NewString()
}

// HashPassword derives a base64-encoded PBKDF2-SHA256 digest of the password
// using the given salt and iteration count. Pure function of its inputs.
func HashPassword(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, digestLen, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// VerifyPassword recomputes the digest with the stored salt and compares it
// against the stored digest in constant time.
func VerifyPassword(password, salt, digest string, iterations int) bool {
	computed := HashPassword(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
