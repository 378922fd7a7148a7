// Package config reads the casvc CLI's TOML config file, grounded on
// the teacher's internal/config/config.go. Unlike the teacher there is
// no repository working directory to discover a config file within —
// casvc has no working-directory abstraction — so the path is fixed by
// the CASVC_CONFIG environment variable or an XDG-style default.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Backend selects which storage.* implementation the engine is wired
// against.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

// Config represents the casvc config file.
type Config struct {
	Core CoreConfig `toml:"core"`
	User UserConfig `toml:"user"`
}

// CoreConfig selects and configures the storage backend.
type CoreConfig struct {
	Backend     Backend `toml:"backend"`      // "memory" or "postgres"
	PostgresURL string  `toml:"postgres_url"` // connection URL, only used when Backend == postgres
}

// UserConfig carries the author identity the CLI prints under its
// confirmation line after a commit. A Commit object has no author field of its own, so this
// never enters the hash contract — it is display metadata only.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// DefaultConfig returns a new config with default values: an in-memory
// backend, convenient for trying the CLI without a database.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{Backend: BackendMemory},
	}
}

// Path returns the config file location: $CASVC_CONFIG if set,
// otherwise an XDG-style per-user default.
func Path() string {
	if p := os.Getenv("CASVC_CONFIG"); p != "" {
		return p
	}

	var configDir string
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "casvc")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "casvc")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "casvc")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "casvc")
		}
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file, returning defaults if it does not exist.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file, creating its parent directory as needed.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// GetUserName returns the configured author name, falling back to the
// CASVC_AUTHOR_NAME environment variable.
func (c *Config) GetUserName() string {
	if c.User.Name != "" {
		return c.User.Name
	}
	return os.Getenv("CASVC_AUTHOR_NAME")
}

// GetUserEmail returns the configured author email, falling back to
// the CASVC_AUTHOR_EMAIL environment variable.
func (c *Config) GetUserEmail() string {
	if c.User.Email != "" {
		return c.User.Email
	}
	return os.Getenv("CASVC_AUTHOR_EMAIL")
}
