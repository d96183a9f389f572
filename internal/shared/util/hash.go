package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns a stable hex fingerprint for uploaded document bytes.
// Logged per analysis run so repeat submissions of the same document can be
// correlated across requests.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
