package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfigDir overrides the directory holding config.toml.
	EnvConfigDir = "CLOSET_CONFIG_DIR"
	// EnvDataDir overrides the directory holding the data files.
	EnvDataDir = "CLOSET_DATA_DIR"

	appName        = "closet"
	configFileName = "config.toml"
)

// Settings are the resolved locations closet works with.
type Settings struct {
	ConfigDir string
	// DataDir is the default data directory before any config file or flag
	// is applied.
	DataDir string
	// DataDirFromEnv is true when CLOSET_DATA_DIR set DataDir.
	DataDirFromEnv bool
}

// ConfigPath returns the path of config.toml.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, configFileName)
}

// ResolveSettings computes Settings from the environment.
func ResolveSettings() (*Settings, error) {
	s := &Settings{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		s.ConfigDir = dir
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("error getting config directory: %w", err)
		}
		s.ConfigDir = filepath.Join(configDir, appName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		s.DataDir = dir
		s.DataDirFromEnv = true
		return s, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error getting home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	s.DataDir = filepath.Join(dataHome, appName, "data")

	return s, nil
}

// DataDir picks the data directory: an explicit flag value, then
// CLOSET_DATA_DIR, then the config file, then the platform default.
func DataDir(flagValue string, s *Settings, cfg *Config) string {
	switch {
	case flagValue != "":
		return flagValue
	case s.DataDirFromEnv:
		return s.DataDir
	case cfg != nil && cfg.Storage.DataDir != "":
		return cfg.Storage.DataDir
	default:
		return s.DataDir
	}
}
