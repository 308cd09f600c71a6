// Package config loads the REPL's small on-disk configuration file,
// mirroring the shape of a project manifest: a plain struct unmarshaled
// from YAML with defaults filled in for anything left unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls cosmetic and diagnostic REPL behavior. It has no
// bearing on language semantics.
type Config struct {
	Prompt     string `yaml:"prompt"`
	EchoTokens bool   `yaml:"echo_tokens"`
	ShowResult bool   `yaml:"show_result"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Prompt:     "myth> ",
		EchoTokens: false,
		ShowResult: true,
	}
}

// Load reads and unmarshals path, filling in defaults for zero-value
// fields the file does not set. A missing file is not an error: Load
// returns Default() in that case.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = Default().Prompt
	}

	return cfg, nil
}
