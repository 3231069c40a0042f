// Package config handles discovery and loading of the lighter
// configuration file.
//
// The configuration lives in a file named .lighter.json, searched first
// in the current working directory and then in the user's home
// directory. The file may contain JSONC (JSON with Comments), which is
// convenient for annotating gateway credentials, so this package uses
// github.com/tidwall/jsonc to strip comments before parsing with the
// standard encoding/json library.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/anjos/lighter/internal/model"
)

// FileName is the configuration file name probed in each candidate
// directory.
const FileName = ".lighter.json"

// Config holds the settings needed to talk to a deCONZ gateway.
type Config struct {
	// Host is the IP address or hostname of the gateway.
	Host string `json:"host"`

	// Port is the TCP port of the gateway's REST API.
	Port int `json:"port"`

	// APIKey is a previously acquired API key. Optional: the only
	// command that works without it is the one that acquires a key.
	APIKey string `json:"api_key,omitempty"`

	// TransitionTime is the fade time between two light states, in
	// tenths of a second. Zero means immediate transitions.
	TransitionTime int `json:"transitiontime,omitempty"`
}

// Validate checks that the fields required to reach a gateway are set
// and plausible.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("configuration is missing the gateway host")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("configuration gateway port %d out of range (1-65535)", c.Port)
	}
	return nil
}

// candidatePaths returns the probed configuration file locations in
// order of preference: working directory first, then the home directory.
func candidatePaths() []string {
	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}
	return candidates
}

// Load finds and parses the configuration file. The first existing
// candidate wins; a missing file in one location is not an error as long
// as a later candidate exists.
//
// Returns a model.CLIError with ExitConfigNotFound when no candidate
// exists, so commands can tell the user how to bootstrap a configuration.
func Load() (*Config, error) {
	for _, path := range candidatePaths() {
		cfg, err := loadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return nil, model.NewCLIError(model.ExitConfigNotFound,
		fmt.Sprintf("no configuration file loaded; create %s in the current or home directory", FileName))
}

// loadFile reads and parses a single configuration file. The raw bytes
// go through jsonc.ToJSON first so comments and trailing commas do not
// break parsing.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigNotFound,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigNotFound,
			fmt.Sprintf("invalid configuration in %s", path), err)
	}

	return &cfg, nil
}
