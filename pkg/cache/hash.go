package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key as prefix:sha256(parts). The parts are
// JSON-marshaled before hashing so integer components like column
// counts hash identically regardless of formatting. Full 256-bit
// hashes keep distinct snapshot/transition pairs from colliding.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 hex digest of data. The runner hashes the
// marshaled reference snapshot with it to key recovery results.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
