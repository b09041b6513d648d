package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxSecretFileBytes = 10 * 1024

// readSecretFile loads a key kept outside the config file (api_key_file,
// explorer_api_key_file). The file must be a small regular file holding the
// key, surrounding whitespace ignored.
func readSecretFile(name, path string) (string, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s file: %w", name, err)
	}

	switch {
	case !info.Mode().IsRegular():
		return "", fmt.Errorf("%s file must be a regular file", name)
	case info.Size() > maxSecretFileBytes:
		return "", fmt.Errorf("%s file too large (max %d bytes)", name, maxSecretFileBytes)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", name, err)
	}

	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", fmt.Errorf("%s file is empty", name)
	}

	return secret, nil
}
