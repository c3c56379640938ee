package config

import (
	"os"
	"path/filepath"
)

// AppName names the per-user cache and data directories.
const AppName = "signaltower"

// RedisAddrEnv overrides the Redis address when the scenario leaves it empty.
const RedisAddrEnv = "SIGNALTOWER_REDIS_ADDR"

// CacheDir returns $XDG_CACHE_HOME/signaltower, or ~/.cache/signaltower.
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DataDir returns $XDG_DATA_HOME/signaltower, or ~/.local/share/signaltower.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StorePath resolves the run history database location.
func (s StoreConfig) StorePath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "runs.db"), nil
}

// RedisAddress returns the configured address, then $SIGNALTOWER_REDIS_ADDR,
// then localhost:6379.
func (c CacheConfig) RedisAddress() string {
	if c.RedisAddr != "" {
		return c.RedisAddr
	}
	if addr := os.Getenv(RedisAddrEnv); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
