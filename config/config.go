// Package config loads tasklist.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/logging"
	"github.com/vinayprograms/tasklist/tasks"
)

// FileName is the config file looked up in the standard paths.
const FileName = "tasklist.toml"

// Config is the session configuration.
type Config struct {
	Tasks   TasksConfig   `toml:"tasks"`
	Display DisplayConfig `toml:"display"`
	Logging LoggingConfig `toml:"logging"`
	Search  SearchConfig  `toml:"search"`
}

// TasksConfig controls how tasks are created and removed.
type TasksConfig struct {
	// DefaultPriority is used when a command names no priority.
	DefaultPriority string `toml:"default_priority"`

	// ConfirmDestructive asks before remove and clear commands.
	ConfirmDestructive bool `toml:"confirm_destructive"`

	// Seed tasks are added when a session starts.
	Seed []SeedTask `toml:"seed"`
}

// SeedTask is a task added at startup.
type SeedTask struct {
	Text     string `toml:"text"`
	Priority string `toml:"priority"`
}

type DisplayConfig struct {
	Theme      string `toml:"theme"`
	SummaryPDF string `toml:"summary_pdf"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	Component string `toml:"component"`
}

type SearchConfig struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"`
}

// Default returns the built-in configuration, including the three sample
// tasks a fresh session starts with.
func Default() *Config {
	return &Config{
		Tasks: TasksConfig{
			DefaultPriority:    string(tasks.PriorityMedium),
			ConfirmDestructive: true,
			Seed: []SeedTask{
				{Text: "Learn Go fundamentals", Priority: "high"},
				{Text: "Complete coding assignment", Priority: "medium"},
				{Text: "Practice terminal rendering", Priority: "low"},
			},
		},
		Display: DisplayConfig{
			Theme: "light",
		},
		Logging: LoggingConfig{
			Level:     "warn",
			Component: "tasklist",
		},
		Search: SearchConfig{
			Enabled: true,
			Limit:   10,
		},
	}
}

// StandardPaths returns the config file locations in order of priority.
func StandardPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tasklist", FileName))
	}
	return paths
}

// Load reads the first config file found in StandardPaths. When none
// exists it returns Default() and an empty path.
func Load() (*Config, string, error) {
	for _, path := range StandardPaths() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadFile(path)
			if err != nil {
				return nil, path, err
			}
			return cfg, path, nil
		}
	}
	return Default(), "", nil
}

// LoadFile reads and validates a config file.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(content))
}

// Parse decodes TOML on top of Default(). Keys absent from content keep
// their default values; a [[tasks.seed]] list replaces the default seed.
func Parse(content string) (*Config, error) {
	cfg := Default()
	defaultSeed := cfg.Tasks.Seed
	cfg.Tasks.Seed = nil

	md, err := toml.Decode(content, cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "invalid config")
	}
	if !md.IsDefined("tasks", "seed") {
		cfg.Tasks.Seed = defaultSeed
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown config key %q", undecoded[0].String()))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated values and limits.
func (c *Config) Validate() error {
	if _, err := tasks.ParsePriority(c.Tasks.DefaultPriority); err != nil {
		return errors.Wrap(err, "tasks.default_priority")
	}
	for i, seed := range c.Tasks.Seed {
		if _, err := tasks.ParsePriority(seed.Priority); err != nil {
			return errors.Wrapf(err, "tasks.seed[%d].priority", i)
		}
	}
	switch c.Display.Theme {
	case "light", "dark":
	default:
		return errors.InvalidInput(fmt.Sprintf("display.theme must be light or dark, got %q", c.Display.Theme))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "logging.level")
	}
	if c.Search.Limit <= 0 {
		return errors.InvalidInput("search.limit must be positive")
	}
	return nil
}

// Priority returns the parsed default priority.
func (c *Config) Priority() tasks.Priority {
	p, err := tasks.ParsePriority(c.Tasks.DefaultPriority)
	if err != nil {
		return tasks.PriorityMedium
	}
	return p
}

// Logger builds a logger from the [logging] section.
func (c *Config) Logger() *logging.Logger {
	logger := logging.New()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if c.Logging.Component != "" {
		logger = logger.WithComponent(c.Logging.Component)
	}
	return logger
}
