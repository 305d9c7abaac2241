package utils

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"
)

// GenerateSecureToken returns a hex string from n random bytes.
func GenerateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// EnvOrDefault returns the trimmed value of key, or def when unset/blank.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// EnvDuration parses a duration from the environment, falling back to def
// when the variable is unset or malformed.
func EnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
