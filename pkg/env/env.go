// Package env reads raw environment variables for the few code paths
// that run before the envconfig-backed configuration is loaded, the
// logger's output format being the main one.
package env

import "os"

// Prefix is the project's envconfig prefix. Get honors it so
// CABLETRACK_LOG_FORMAT and LOG_FORMAT both work.
const Prefix = "CABLETRACK_"

// Get returns the named variable, the prefixed form winning over the
// bare one, or fallback when neither is set.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
