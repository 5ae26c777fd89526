package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Jakarta on hosts without a zoneinfo database

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/lokatani/config.yaml"

// Config holds all lokatani configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Import    ImportConfig    `yaml:"import"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
	Chat      ChatConfig      `yaml:"chat"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type CalendarConfig struct {
	Timezone       string `yaml:"timezone"`
	FirstDayOfWeek string `yaml:"first_day_of_week"`
}

// VegetableConfig adds a vegetable family on top of the built-in ones.
type VegetableConfig struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

type LexiconConfig struct {
	Vegetables []VegetableConfig `yaml:"vegetables"`
}

type ImportConfig struct {
	Sheet           string `yaml:"sheet"`
	TimestampLayout string `yaml:"timestamp_layout"`
	SkipHeader      bool   `yaml:"skip_header"`
}

// RetentionConfig bounds how long weighings are kept. Zero keeps everything.
type RetentionConfig struct {
	Days int `yaml:"days"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

type ChatConfig struct {
	Suggestions int `yaml:"suggestions"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"minggu":    time.Sunday,
	"senin":     time.Monday,
	"selasa":    time.Tuesday,
	"rabu":      time.Wednesday,
	"kamis":     time.Thursday,
	"jumat":     time.Friday,
	"sabtu":     time.Saturday,
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.FirstDayOfWeek(); err != nil {
		return err
	}
	for _, v := range c.Lexicon.Vegetables {
		name := strings.TrimSpace(v.Canonical)
		if name == "" {
			return fmt.Errorf("lexicon: vegetable with empty canonical name")
		}
		if strings.EqualFold(name, "semua") {
			return fmt.Errorf("lexicon: vegetable name %q is reserved", name)
		}
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if c.Retention.Days < 0 {
		return fmt.Errorf("retention: days must not be negative")
	}
	if c.Chat.Suggestions < 0 {
		return fmt.Errorf("chat: suggestions must not be negative")
	}
	return nil
}

// Location returns the configured time zone; empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar: timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

// FirstDayOfWeek parses calendar.first_day_of_week, accepting English or
// Indonesian day names. Empty means Monday.
func (c *Config) FirstDayOfWeek() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(c.Calendar.FirstDayOfWeek))
	if name == "" {
		return time.Monday, nil
	}
	d, ok := weekdays[name]
	if !ok {
		return 0, fmt.Errorf("calendar: unknown first_day_of_week %q", c.Calendar.FirstDayOfWeek)
	}
	return d, nil
}

// DBPath returns the absolute path to the SQLite database file.
func (c *Config) DBPath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// LogPath returns the expanded log file path, or "" when logging goes to
// stderr. Relative names are placed in the storage directory.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File == "" {
		return "", nil
	}
	p, err := expandPath(c.Logging.File)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p), nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
