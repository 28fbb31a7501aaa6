package sessiontoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
)

// TokenByteLength is the entropy of a generated token (256 bits).
const TokenByteLength = 32

// ErrTokenGeneration is returned when the system entropy source fails.
// Callers must abort session issuance; there is no weaker fallback.
var ErrTokenGeneration = errors.New("failed to generate session token")

// encoding is lowercase base32 without padding, safe for cookie values.
var encoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Generate returns a cryptographically secure random session token.
// The token is the only credential the client ever holds; the server
// stores just the derived hash.
func Generate() (string, error) {
	b := make([]byte, TokenByteLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return encoding.EncodeToString(b), nil
}

// DeriveID maps a client token to its session identifier: lowercase hex
// SHA-256 of the token bytes. Deterministic and one-way; security comes
// from token entropy, not from hash secrecy.
func DeriveID(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
