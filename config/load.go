package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no candidate location yields a valid config
var ErrNotFound = errors.New("config file not found")

const (
	appDir   = "clockdate"
	fileName = "config.toml"
)

// CandidatePaths lists config locations in search order:
// $HOME/.config/clockdate/config.toml when HOME is set, then ./config.toml
func CandidatePaths() []string {
	var paths []string
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appDir, fileName))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, fileName))
	}
	return paths
}

// LoadFrom returns the first candidate that reads and parses.
// Failures on one candidate never stop the search.
func LoadFrom(paths []string) (*Config, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Printf("config: skipping %s: %v", path, err)
			}
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			log.Printf("config: skipping %s: %v", path, err)
			continue
		}
		log.Printf("config: loaded %s", path)
		return cfg, nil
	}
	return nil, ErrNotFound
}

// Load searches the default candidate locations
func Load() (*Config, error) {
	return LoadFrom(CandidatePaths())
}

// LoadOrDefault never fails; it falls back to Default when nothing resolves
func LoadOrDefault(extra ...string) *Config {
	paths := append(extra[:len(extra):len(extra)], CandidatePaths()...)
	cfg, err := LoadFrom(paths)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
		return Default()
	}
	return cfg
}
