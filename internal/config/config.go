// Package config loads optional compiler configuration from a TOML file.
// Every setting has a default; a missing file at DefaultPath is not an error,
// but a missing explicitly named file is.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/cpq/internal/version"
)

// DefaultPath is the config file looked for when none is given explicitly.
const DefaultPath = "cpq.toml"

// Config holds every tunable of the cpq toolchain.
type Config struct {
	Output struct {
		// Extension is the file extension of emitted quad listings,
		// without the dot.
		Extension string `toml:"extension"`

		// Signature is the line appended after the last quad and after
		// error printouts.
		Signature string `toml:"signature"`
	} `toml:"output"`

	Exec struct {
		// MaxSteps bounds VM execution; zero means the VM default.
		MaxSteps int `toml:"max_steps"`
	} `toml:"exec"`

	Server struct {
		// Address is the listen address of the compile service.
		Address string `toml:"address"`
	} `toml:"server"`
}

// Default returns the configuration used when no file overrides anything.
func Default() Config {
	var c Config
	c.Output.Extension = "qud"
	c.Output.Signature = version.Signature
	c.Server.Address = ":8424"
	return c
}

// Load reads the config file at path layered over the defaults. If path is
// DefaultPath and the file does not exist, the defaults are returned without
// error; an explicitly named file must exist.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.Output.Extension == "" {
		c.Output.Extension = "qud"
	}
	if c.Output.Signature == "" {
		c.Output.Signature = version.Signature
	}

	return c, nil
}
