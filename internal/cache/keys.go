package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "quizcraft"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SessionKey is where a session's quiz state lives.
func SessionKey(sessionID string) string {
	return GenerateCacheKey("session", "state", sessionID)
}

// AnalysisKey addresses cached analysis results by the SHA-256 of the text.
func AnalysisKey(text string) string {
	return GenerateCacheKey("analysis", "text", ContentHash(text))
}

// ContentHash is the hex SHA-256 of s.
func ContentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
