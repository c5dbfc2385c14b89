package node

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Network  string `toml:"network"`
	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var allowedNetworks = map[string]struct{}{
	"devnet":  {},
	"testnet": {},
	"mainnet": {},
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".meridian"
	}
	return filepath.Join(home, ".meridian")
}

func DefaultConfig() Config {
	return Config{
		Network:  "devnet",
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
	}
}

// LoadConfigFile overlays a TOML file on the defaults. A missing file
// is not an error; the defaults stand.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if _, ok := allowedNetworks[strings.ToLower(cfg.Network)]; !ok {
		return fmt.Errorf("unknown network %q", cfg.Network)
	}
	if _, ok := allowedLogLevels[strings.ToLower(cfg.LogLevel)]; !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir required")
	}
	return nil
}
