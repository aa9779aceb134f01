// Package config loads the CLI's settings from a TOML file, with
// command-line flags applied on top as overrides.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Method names one of the four parser-generation methods the CLI can build
// a table with.
type Method string

const (
	MethodLR0   Method = "lr0"
	MethodSLR1  Method = "slr1"
	MethodLR1   Method = "lr1"
	MethodLALR1 Method = "lalr1"
)

// LALRStrategy names which of the two LALR(1) derivations to use.
type LALRStrategy string

const (
	LALRMerge   LALRStrategy = "merge"
	LALRDigraph LALRStrategy = "digraph"
)

// Config is the CLI's full configuration surface, loadable from a TOML
// file and then overridden field-by-field by parsed flags.
type Config struct {
	Method       Method       `toml:"method"`
	LALRStrategy LALRStrategy `toml:"lalr_strategy"`
	TraceLevel   string       `toml:"trace_level"`
	Color        bool         `toml:"color"`
	CachePath    string       `toml:"cache_path"`
	GrammarPath  string       `toml:"grammar_path"`
}

// Default returns the built-in defaults used when no config file is
// present.
func Default() Config {
	return Config{
		Method:       MethodLALR1,
		LALRStrategy: LALRDigraph,
		TraceLevel:   "info",
		Color:        true,
		CachePath:    "",
		GrammarPath:  "",
	}
}

// Load reads a TOML configuration file at path, starting from Default and
// overwriting whichever fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return cfg, nil
}
