// Package config defines firparse's optional TOML configuration file.
// Grounded on the teacher's use of github.com/BurntSushi/toml for
// declarative data loading (internal/tqw); unlike tqw's world-data
// format, this is plain program configuration, not game content, but
// the loading idiom — unmarshal into a struct, validate field-by-field
// after load — is the same.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is firparse's full set of user-adjustable defaults. Tab
// rejection in indentation is never configurable here — the indentation
// invariant always rejects tabs regardless of this struct's contents.
type Config struct {
	// IndentWidth documents the number of spaces one indent level is
	// expected to use. It is advisory only: Load checks that it is
	// positive, but nothing else reads it, and the tokenizer accepts any
	// consistent indentation increase.
	IndentWidth int `toml:"indent_width"`

	// Keywords lists additional project-specific reserved identifiers.
	// It is decoded from the file but not passed to the lexer: the
	// reserved-word list in internal/firrtl is fixed.
	Keywords []string `toml:"keywords"`

	// TraceFilter is the default value used for FIRPARSE_TRACE when the
	// environment variable is unset; an empty string disables tracing.
	TraceFilter string `toml:"trace_filter"`
}

// Default returns the built-in configuration used when no -c/--config
// file is given.
func Default() Config {
	return Config{
		IndentWidth: 2,
		TraceFilter: "",
	}
}

// Load reads and decodes the TOML file at path, applied over Default().
// A missing file is not an error: Load returns Default() unchanged. A
// present but malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config file: %w", err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.IndentWidth <= 0 {
		return cfg, fmt.Errorf("config file %s: indent_width must be positive, got %d", path, cfg.IndentWidth)
	}

	return cfg, nil
}
