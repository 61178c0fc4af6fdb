package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries the tool-wide directory defaults. Flags override
// anything loaded here.
type Config struct {
	InstallDir string `toml:"install_dir"`
	BinDir     string `toml:"bin_dir"`
	DesktopDir string `toml:"desktop_dir"`
	StateFile  string `toml:"state_file"`
}

func Default() *Config {
	cfg := &Config{
		InstallDir: "/opt",
		BinDir:     "/usr/local/bin",
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.DesktopDir = filepath.Join(home, ".local", "share", "applications")
		cfg.StateFile = filepath.Join(home, ".local", "share", "instapp", "state.db")
	}

	return cfg
}

// Load returns the defaults, overlaid with ~/.config/instapp/config.toml
// when it exists. A missing file is fine; a malformed one is an error.
func Load() (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	configPath := filepath.Join(home, ".config", "instapp", "config.toml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}

	return cfg, nil
}
