package document

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentID derives the content-addressed identifier for a chunk.
// It hashes the chunk text only, so identical text always yields the
// identical id regardless of the owning source file. Re-ingesting
// unchanged content therefore collapses to existing index entries.
func ContentID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
