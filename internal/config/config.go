// Package config loads tada's TOML configuration.
//
// Sources in priority order (later wins):
//  1. Built-in defaults
//  2. User config file (~/.tada/config.toml)
//  3. An explicit file passed with --config
//  4. CLI flags (applied by the caller)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDirName       = ".tada"
	DefaultFileName      = "config.toml"
	DefaultLocalFile     = "defaults.json"
	DefaultSharedFile    = "group.todolist.db"
	DefaultRemindersFile = "reminders.db"
	DefaultAuthFile      = "notifications.json"
	DefaultLocale        = "en"
	DefaultWidgetFamily  = "medium"
	DefaultWidgetRefresh = 15 * time.Minute
	DefaultReminderPoll  = 30 * time.Second
)

// Config holds the full configuration.
type Config struct {
	// DataDir holds every file below unless overridden. "~" is expanded.
	DataDir       string `toml:"data_dir"`
	LocalPath     string `toml:"local_path"`
	SharedPath    string `toml:"shared_path"`
	RemindersPath string `toml:"reminders_path"`
	AuthPath      string `toml:"auth_path"`

	// Locale drives locale-aware title ordering (BCP 47 tag).
	Locale string `toml:"locale"`

	Log       LogConfig       `toml:"log"`
	Widget    WidgetConfig    `toml:"widget"`
	Reminders RemindersConfig `toml:"reminders"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Timestamps bool   `toml:"timestamps"`
}

type WidgetConfig struct {
	Family  string   `toml:"family"`
	Refresh Duration `toml:"refresh"`
}

type RemindersConfig struct {
	Poll Duration `toml:"poll"`
}

// Duration decodes TOML strings like "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		DataDir: filepath.Join("~", DefaultDirName),
		Locale:  DefaultLocale,
		Log:     LogConfig{Level: "info", Format: "text"},
		Widget: WidgetConfig{
			Family:  DefaultWidgetFamily,
			Refresh: Duration{DefaultWidgetRefresh},
		},
		Reminders: RemindersConfig{Poll: Duration{DefaultReminderPoll}},
	}
}

// Load applies defaults, then the user file, then explicitPath when set.
// A missing user file is fine; a missing explicit file is an error.
func Load(explicitPath string) (*Config, error) {
	cfg := Default()

	if p := userConfigFile(); p != "" {
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := loadFile(cfg, explicitPath); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicitPath, err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize expands "~" and fills derived paths. Safe to call repeatedly.
func (c *Config) Finalize() error {
	dir, err := expandHome(c.DataDir)
	if err != nil {
		return err
	}
	if dir == "" {
		return errors.New("data_dir is empty")
	}
	c.DataDir = dir

	fill := func(p *string, name string) error {
		if *p == "" {
			*p = filepath.Join(c.DataDir, name)
			return nil
		}
		v, err := expandHome(*p)
		*p = v
		return err
	}
	if err := fill(&c.LocalPath, DefaultLocalFile); err != nil {
		return err
	}
	if err := fill(&c.SharedPath, DefaultSharedFile); err != nil {
		return err
	}
	if err := fill(&c.RemindersPath, DefaultRemindersFile); err != nil {
		return err
	}
	if err := fill(&c.AuthPath, DefaultAuthFile); err != nil {
		return err
	}

	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.Widget.Family == "" {
		c.Widget.Family = DefaultWidgetFamily
	}
	if c.Widget.Refresh.Duration <= 0 {
		c.Widget.Refresh = Duration{DefaultWidgetRefresh}
	}
	if c.Reminders.Poll.Duration <= 0 {
		c.Reminders.Poll = Duration{DefaultReminderPoll}
	}
	return nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

func userConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, DefaultDirName, DefaultFileName)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// SetDataDir moves every path still derived from the old data dir under dir.
// Paths set explicitly elsewhere are kept.
func (c *Config) SetDataDir(dir string) error {
	old := c.DataDir
	for _, f := range []struct {
		p    *string
		name string
	}{
		{&c.LocalPath, DefaultLocalFile},
		{&c.SharedPath, DefaultSharedFile},
		{&c.RemindersPath, DefaultRemindersFile},
		{&c.AuthPath, DefaultAuthFile},
	} {
		if *f.p == filepath.Join(old, f.name) {
			*f.p = ""
		}
	}
	c.DataDir = dir
	return c.Finalize()
}
