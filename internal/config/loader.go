package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // "dev" enables the working directory rc file
	OverridePath string // set at build time when packaging
}

// NewLoader creates a Loader.
func NewLoader(version, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the first configuration file found, or returns defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath returns the configuration file in use, or "" when none exists.
// Search order: OverridePath, ./.inkshotrc in dev builds, then the user
// config directory.
func (l *Loader) ConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			local := filepath.Join(wd, ".inkshotrc")
			if _, err := os.Stat(local); err == nil {
				return local
			}
		}
	}
	if p := UserPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SavePath is where "config save" writes: the file in use, else the user
// config file.
func (l *Loader) SavePath() (string, error) {
	if p := l.ConfigPath(); p != "" {
		return p, nil
	}
	if p := UserPath(); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no home directory for the configuration file")
}

// UserPath is ~/.config/inkshot/config.rc.
func UserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkshot", "config.rc")
}

// Save writes cfg to path, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
