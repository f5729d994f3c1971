package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Instance identifies the running process in logs (dyno, pod or hostname).
func Instance() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if v := Get(key, ""); v != "" {
			return v
		}
	}
	return "local"
}
