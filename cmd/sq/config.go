package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/sq/parser"
)

const configFile = ".sq.toml"

// config holds the project-level defaults read from .sq.toml. Command-line
// flags override every entry.
type config struct {
	Platform string `toml:"platform"`
	Mode     string `toml:"mode"`
	Field    string `toml:"field"`
}

// loadConfig reads path, or .sq.toml in the working directory when path is
// empty. A missing default file is not an error.
func loadConfig(path string) (config, error) {
	cfg := config{Platform: "generic"}
	if path == "" {
		if _, err := os.Stat(configFile); err != nil {
			return cfg, nil
		}
		path = configFile
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Platform == "" {
		cfg.Platform = "generic"
	}
	return cfg, nil
}

func (c config) options() parser.Options {
	opts := parser.Options{FieldGeneral: c.Field}
	if c.Mode == "strict" {
		opts.Mode = parser.Strict
	}
	return opts
}

// merge applies non-empty flag values over the file defaults.
func (c config) merge(platformFlag, modeFlag, fieldFlag string) config {
	if platformFlag != "" {
		c.Platform = platformFlag
	}
	if modeFlag != "" {
		c.Mode = modeFlag
	}
	if fieldFlag != "" {
		c.Field = fieldFlag
	}
	return c
}
