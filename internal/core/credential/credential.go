// Package credential turns plaintext passwords into the storable salted-hash
// form "salt:digest" and verifies presented passwords against it.
//
// The stored format is a compatibility contract with existing records: a
// 32-character hex salt, a literal colon, and a 64-character hex SHA-256
// digest of the hex salt concatenated with the plaintext — 97 characters
// total.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	saltBytes    = 16
	saltHexLen   = saltBytes * 2
	digestHexLen = sha256.Size * 2

	// EncodedLen is the exact length of a stored credential string.
	EncodedLen = saltHexLen + 1 + digestHexLen
)

// Hash returns the hex-encoded SHA-256 digest of secret.
func Hash(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:])
}

// Encode salts and hashes a plaintext password into its storable form.
// The salt is drawn fresh from crypto/rand on every call, so two encodings
// of the same password never collide.
func Encode(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("credential: read salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	return salt + ":" + Hash([]byte(salt+password)), nil
}

// Verify reports whether password matches the stored "salt:digest" string.
// A malformed stored value verifies as false, never as an error: the caller
// treats it as invalid credentials, not a system fault.
func Verify(password, stored string) bool {
	salt, digest, ok := strings.Cut(stored, ":")
	if !ok || len(salt) != saltHexLen || len(digest) != digestHexLen {
		return false
	}
	computed := Hash([]byte(salt + password))
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
