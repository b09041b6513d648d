package internal

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	ConfigHomeEnv     = "ONCHAIN_AGENT_CONFIG_HOME"
	DataHomeEnv       = "ONCHAIN_AGENT_DATA_HOME"
	CacheHomeEnv      = "ONCHAIN_AGENT_CACHE_HOME"
	DefaultConfigDir  = ".onchain-agent"
	DefaultDataDir    = "data"
	DefaultCacheDir   = "cache"
	SlugPostfixLength = 4
)

func GenerateUniqueSlug(prefix string) string {
	return prefix + uuid.New().String()[:SlugPostfixLength]
}

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}

func GetDataHome() (string, error) {
	return subdir(DataHomeEnv, DefaultDataDir)
}

func GetCacheHome() (string, error) {
	return subdir(CacheHomeEnv, DefaultCacheDir)
}

// subdir resolves a directory below the config home unless env overrides it.
func subdir(env, name string) (string, error) {
	if tmp := os.Getenv(env); tmp != "" {
		return tmp, nil
	}

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, name), nil
}
