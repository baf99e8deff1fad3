package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from ~/.config/enigma/config.toml.
// Every field has a built-in default, so a missing or partial file is fine.
type Config struct {
	// DefaultFamily is used when --family is not given.
	DefaultFamily string `toml:"default_family"`

	// DefaultSize is the grid edge used when --size is not given. Zero
	// falls through to the family's own default.
	DefaultSize int `toml:"default_size"`

	// MaxStates caps solver search states during generation.
	MaxStates int `toml:"max_states"`

	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`
}

// RedisConfig configures the optional Redis puzzle cache. An empty Addr
// means the file cache is used instead.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the optional MongoDB dataset store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// defaultConfig returns the built-in defaults applied before the file is read.
func defaultConfig() *Config {
	return &Config{
		DefaultFamily: "slant",
		Server:        ServerConfig{Addr: "127.0.0.1:8080"},
		Mongo:         MongoConfig{Database: "enigma"},
	}
}

// LoadConfig reads the config file if present and overlays it on the
// defaults. Errors are swallowed deliberately: a broken config file must
// never keep the CLI from starting, and commands that need a specific
// setting surface their own errors when it is missing.
func LoadConfig() *Config {
	cfg := defaultConfig()
	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	_, _ = toml.DecodeFile(path, cfg)
	return cfg
}
