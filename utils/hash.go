package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashValue returns the SHA-256 hex digest of a credential value (national-ID
// suffix or employee id). Unsalted on purpose: bulk import and the
// default-password check both need the same input to hash to the same digest.
func HashValue(val string) string {
	sum := sha256.Sum256([]byte(val))
	return hex.EncodeToString(sum[:])
}
