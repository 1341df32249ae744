// Package config loads and validates server configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the immutable server configuration. It is constructed once at
// process start and shared read-only across all request handlers.
type Config struct {
	// Addr is the IP:PORT combination to listen on.
	Addr string `toml:"addr"`
	// RootDir is the directory subtree the server exposes. After
	// Finalize it is absolute with symlinks resolved.
	RootDir string `toml:"root_dir"`
	// MimeTypes optionally names a YAML file of extension→type overrides.
	MimeTypes string `toml:"mime_types"`
	// DevExtensions enables the developer extensions.
	DevExtensions bool `toml:"dev_extensions"`
}

// Default returns the configuration used when no flags or file override it.
func Default() *Config {
	return &Config{
		Addr:    "127.0.0.1:4000",
		RootDir: ".",
	}
}

// LoadFile merges a TOML config file into cfg. Keys absent from the file
// keep their current values.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// Finalize canonicalizes the root directory and verifies it exists. The
// resolver's containment checks assume a canonical root, so this must run
// before any request is served.
func (c *Config) Finalize() error {
	abs, err := filepath.Abs(c.RootDir)
	if err != nil {
		return fmt.Errorf("resolving root dir: %w", err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("resolving root dir %s: %w", abs, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return fmt.Errorf("checking root dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", canonical)
	}
	c.RootDir = canonical
	return nil
}
