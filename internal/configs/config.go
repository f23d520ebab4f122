package configs

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/PolarWolf314/closet/internal/secrets"

	"github.com/BurntSushi/toml"
)

// Config is the contents of config.toml.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	User    UserConfig    `toml:"user"`
	KDF     KDFConfig     `toml:"kdf"`
}

type StorageConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

type UserConfig struct {
	DefaultUsername string `toml:"default_username,omitempty"`
}

// KDFConfig sets the Argon2id cost for newly saved files. Zero values fall
// back to the defaults. Existing files keep the parameters in their header.
type KDFConfig struct {
	Time      uint32 `toml:"time,omitempty"`
	MemoryKiB uint32 `toml:"memory_kib,omitempty"`
	Threads   uint8  `toml:"threads,omitempty"`
}

// DefaultConfig returns a config with the KDF defaults filled in.
func DefaultConfig() *Config {
	p := secrets.DefaultKDFParams()
	return &Config{
		KDF: KDFConfig{Time: p.Time, MemoryKiB: p.MemoryKiB, Threads: p.Threads},
	}
}

// KDFParams returns the configured parameters with defaults for unset
// values, and validates them.
func (c *Config) KDFParams() (secrets.KDFParams, error) {
	p := secrets.DefaultKDFParams()
	if c.KDF.Time != 0 {
		p.Time = c.KDF.Time
	}
	if c.KDF.MemoryKiB != 0 {
		p.MemoryKiB = c.KDF.MemoryKiB
	}
	if c.KDF.Threads != 0 {
		p.Threads = c.KDF.Threads
	}
	if err := p.Validate(); err != nil {
		return secrets.KDFParams{}, fmt.Errorf("invalid [kdf] section in config: %w", err)
	}
	return p, nil
}

// LoadConfig reads the config file at path. A missing file yields an empty
// config. Unknown keys are an error so typos do not silently fall back to
// defaults.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("failed to load config: unknown keys %s", strings.Join(keys, ", "))
	}

	return config, nil
}

// SaveConfig writes the config file at path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
