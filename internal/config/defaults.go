package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/lokatani",
			SQLiteFile: "lokatani.db",
		},
		Calendar: CalendarConfig{
			Timezone:       "Asia/Jakarta",
			FirstDayOfWeek: "monday",
		},
		Lexicon: LexiconConfig{
			Vegetables: []VegetableConfig{},
		},
		Import: ImportConfig{
			Sheet:           "",
			TimestampLayout: "2006-01-02 15:04:05",
			SkipHeader:      true,
		},
		Retention: RetentionConfig{
			Days: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			File:   "",
			Format: "text",
		},
		Chat: ChatConfig{
			Suggestions: 3,
		},
	}
}
