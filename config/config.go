// Package config handles the golfscript.toml / golfscript.yaml interpreter
// settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	golfscript "github.com/Starklosch/Golfscript/core"
)

// FileNames are the names FindAndLoad looks for, in order of preference.
var FileNames = []string{"golfscript.toml", "golfscript.yaml", "golfscript.yml"}

// Config is the full set of interpreter and front end settings.
type Config struct {
	Interpreter Interpreter `toml:"interpreter" yaml:"interpreter"`
	REPL        REPL        `toml:"repl" yaml:"repl"`
	Output      Output      `toml:"output" yaml:"output"`
	Log         Log         `toml:"log" yaml:"log"`

	// Prelude binds names to block sources before any program runs.
	Prelude map[string]string `toml:"prelude" yaml:"prelude"`

	// Path is the file the configuration was read from (set at load time).
	Path string `toml:"-" yaml:"-"`
}

type Interpreter struct {
	MaxDepth int   `toml:"max-depth" yaml:"max-depth"`
	Seed     int64 `toml:"seed" yaml:"seed"`
}

type REPL struct {
	Prompt             string `toml:"prompt" yaml:"prompt"`
	ContinuationPrompt string `toml:"continuation-prompt" yaml:"continuation-prompt"`
	History            string `toml:"history" yaml:"history"`
	// Reset lists what is cleared after every code piece and REPL line:
	// "stack", "vars" or both.
	Reset []string `toml:"reset" yaml:"reset"`
}

type Output struct {
	// Native prints the final stack in native form instead of its display
	// form.
	Native bool `toml:"native" yaml:"native"`
}

type Log struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Interpreter.MaxDepth <= 0 {
		c.Interpreter.MaxDepth = golfscript.DefaultMaxDepth
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "> "
	}
	if c.REPL.ContinuationPrompt == "" {
		c.REPL.ContinuationPrompt = ". "
	}
	if c.REPL.History == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.History = filepath.Join(home, ".golfscript_history")
		}
	}
	if c.Prelude == nil {
		c.Prelude = make(map[string]string)
	}
}

// Load parses a configuration file. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("unsupported config format %q in %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	c.applyDefaults()
	return &c, nil
}

// FindAndLoad walks up from startDir to find a configuration file and loads
// it. Without one it returns the defaults.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// InterpConfig translates the interpreter settings.
func (c *Config) InterpConfig() golfscript.Config {
	return golfscript.Config{
		MaxDepth: c.Interpreter.MaxDepth,
		Seed:     c.Interpreter.Seed,
	}
}

// ResetOptions translates the reset list into golfscript.ResetStack and
// golfscript.ResetVars flags.
func (c *Config) ResetOptions() (int, error) {
	return ParseReset(c.REPL.Reset)
}

// ParseReset accepts "stack" and "vars"; empty entries are ignored.
func ParseReset(names []string) (int, error) {
	opts := 0
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "stack":
			opts |= golfscript.ResetStack
		case "vars":
			opts |= golfscript.ResetVars
		case "":
		default:
			return 0, fmt.Errorf("invalid reset option %q (want stack or vars)", name)
		}
	}
	return opts, nil
}
