package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns kind + ":" + the SHA-256 of the JSON encoding of parts.
// parts must be JSON-encodable; equal parts always give equal keys.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		panic("cache: unencodable key parts: " + err.Error())
	}
	return kind + ":" + Hash(data)
}

// Hash is the lowercase hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
