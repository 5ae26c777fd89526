package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "~/.config/lokatani", cfg.Storage.Path)
	assert.Equal(t, "lokatani.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "Asia/Jakarta", cfg.Calendar.Timezone)
	assert.Equal(t, "monday", cfg.Calendar.FirstDayOfWeek)
	assert.Empty(t, cfg.Lexicon.Vegetables)
	assert.Empty(t, cfg.Import.Sheet)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Import.TimestampLayout)
	assert.True(t, cfg.Import.SkipHeader)
	assert.Zero(t, cfg.Retention.Days)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Chat.Suggestions)

	assert.NoError(t, cfg.Validate())
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	cfgPath := writeConfig(t, `
calendar:
  timezone: "Asia/Makassar"
  first_day_of_week: "sunday"
import:
  sheet: "Timbangan"
retention:
  days: 90
logging:
  level: "debug"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "Asia/Makassar", cfg.Calendar.Timezone)
	assert.Equal(t, "sunday", cfg.Calendar.FirstDayOfWeek)
	assert.Equal(t, "Timbangan", cfg.Import.Sheet)
	assert.Equal(t, 90, cfg.Retention.Days)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Import.TimestampLayout)
	assert.True(t, cfg.Import.SkipHeader)
	assert.Equal(t, "lokatani.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, 3, cfg.Chat.Suggestions)
}

func TestLoadLexiconVegetables(t *testing.T) {
	cfgPath := writeConfig(t, `
lexicon:
  vegetables:
    - canonical: "sawi"
      variants: ["sawi hijau", "caisim"]
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Len(t, cfg.Lexicon.Vegetables, 1)
	assert.Equal(t, "sawi", cfg.Lexicon.Vegetables[0].Canonical)
	assert.Equal(t, []string{"sawi hijau", "caisim"}, cfg.Lexicon.Vegetables[0].Variants)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	cfgPath := writeConfig(t, ":::not valid yaml{{{")

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load("/tmp/nonexistent_path_12345/config.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"timezone":    "calendar:\n  timezone: \"Mars/Olympus\"\n",
		"weekday":     "calendar:\n  first_day_of_week: \"someday\"\n",
		"reserved":    "lexicon:\n  vegetables:\n    - canonical: \"semua\"\n",
		"empty name":  "lexicon:\n  vegetables:\n    - canonical: \"  \"\n",
		"log format":  "logging:\n  format: \"xml\"\n",
		"retention":   "retention:\n  days: -1\n",
		"suggestions": "chat:\n  suggestions: -2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "deep", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)

	// Should return defaults
	assert.Equal(t, "Asia/Jakarta", cfg.Calendar.Timezone)
	assert.Equal(t, 3, cfg.Chat.Suggestions)

	// File should now exist on disk
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	// File should be valid YAML loadable again
	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Calendar, cfg2.Calendar)
	assert.Equal(t, cfg.Import, cfg2.Import)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	cfgPath := writeConfig(t, `
chat:
  suggestions: 5
`)

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Chat.Suggestions)
	// Other fields remain defaults
	assert.Equal(t, "monday", cfg.Calendar.FirstDayOfWeek)
}

func TestLoadPartialYAMLMergesWithDefaults(t *testing.T) {
	// Only override one nested field
	cfgPath := writeConfig(t, `
import:
  skip_header: false
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.False(t, cfg.Import.SkipHeader)
	// Other import fields remain default
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Import.TimestampLayout)
	assert.Empty(t, cfg.Import.Sheet)
}

func TestFirstDayOfWeek(t *testing.T) {
	cases := map[string]time.Weekday{
		"":        time.Monday,
		"monday":  time.Monday,
		"Sunday":  time.Sunday,
		"minggu":  time.Sunday,
		" Senin ": time.Monday,
		"sabtu":   time.Saturday,
	}
	for in, want := range cases {
		cfg := DefaultConfig()
		cfg.Calendar.FirstDayOfWeek = in
		got, err := cfg.FirstDayOfWeek()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())

	cfg.Calendar.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestDBPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	p, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "lokatani", "lokatani.db"), p)
}

func TestLogPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/data/lokatani"

	p, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Empty(t, p)

	cfg.Logging.File = "lokatani.log"
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/lokatani/lokatani.log", p)

	cfg.Logging.File = "/var/log/lokatani.log"
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/lokatani.log", p)
}
