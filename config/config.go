// Package config loads the demo CLI's run options from an optional TOML
// file, grounded on the vovakirdan-surge and ArubikU-polyloft manifests
// (both CLI-shaped language tools in the retrieval pack that use
// github.com/BurntSushi/toml for configuration) rather than hand-rolling a
// flag-only setup the way the teacher's cmd/parse/main.go does.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is cmd/jcheck's run configuration: a color setting, how verbose
// driver tracing is, and which fixture scenario to run by default when none
// is named on the command line. Color is loaded but cmd/jcheck does not
// read it; diag's coloring is not switched by it.
type Config struct {
	Color           bool   `toml:"color"`
	Verbose         bool   `toml:"verbose"`
	DefaultScenario string `toml:"default_scenario"`
}

// Default returns the configuration used when no file is loaded.
func Default() Config {
	return Config{Color: true, Verbose: false, DefaultScenario: "fixed-array-to-slice"}
}

// Load reads path as TOML into a copy of Default, leaving every field the
// file doesn't mention at its default. A missing file is not an error --
// cmd/jcheck's config is entirely optional.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
