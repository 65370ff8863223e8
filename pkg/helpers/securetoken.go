package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// Secure tokens are the bearer secrets mailed to users for email
// verification and password reset. The raw value is shown once in the email
// link; only its SHA-256 digest is persisted, so a database read alone
// cannot forge a link.

const tokenBytes = 32 // 256 bits of entropy

// GenerateToken returns a URL-safe random token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken returns the hex SHA-256 digest of token. Deterministic: equal
// tokens always hash to the same digest, which is what makes the digest
// usable as a lookup key.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenMatches recomputes the digest of token and compares it against the
// stored digest in constant time.
func TokenMatches(token, storedDigest string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(storedDigest)) == 1
}
