package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults read from the on-disk configuration file.
// Flags take precedence over config values.
type Config struct {
	// MaxIterations is the default iteration budget for the relax command.
	MaxIterations int `toml:"max_iterations"`

	// Ordering is the default rejection ordering for the select command.
	Ordering string `toml:"ordering"`

	// Serve holds defaults for the serve command.
	Serve ServeConfig `toml:"serve"`
}

// ServeConfig configures the HTTP server backends.
type ServeConfig struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`

	// Redis is the redis address for the layout cache. Empty means the
	// local file cache.
	Redis string `toml:"redis"`

	// MongoURI is the MongoDB connection URI for the packing store.
	// Empty means the in-memory store.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the MongoDB database name holding the packings
	// collection.
	MongoDatabase string `toml:"mongo_db"`
}

// defaultConfig returns the built-in defaults used when no config file
// exists.
func defaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		Ordering:      "maxov",
		Serve: ServeConfig{
			Addr:          ":8080",
			MongoDatabase: "circlepack",
		},
	}
}

// configPath returns the config file location using XDG standard
// (~/.config/circlepack/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file, falling back to defaults when the
// file is missing or unreadable. A broken config never blocks the CLI.
func LoadConfig() Config {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	// Decode over the defaults so partial configs keep the rest.
	_, _ = toml.DecodeFile(path, &cfg)
	return cfg
}
