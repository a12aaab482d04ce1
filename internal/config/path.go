// Package config loads and validates the bundle configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir is the directory holding config.yaml and the default database.
const Dir = "~/.config/bundle"

// ExpandPath resolves a leading ~ to the user's home directory and then
// substitutes $VAR references. Paths are returned unchanged when the home
// directory cannot be determined.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	return os.ExpandEnv(path)
}
