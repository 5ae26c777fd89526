package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veggievision/lokatani/internal/config"
	"github.com/veggievision/lokatani/internal/dataset"
	"github.com/veggievision/lokatani/internal/logging"
	"github.com/veggievision/lokatani/internal/nlp"
	"github.com/veggievision/lokatani/internal/storage"
)

// runtime is everything a command needs once flags are parsed. Execute
// builds one from the config file; tests build one around an in-memory
// store and a pinned clock.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *storage.SQLiteStore
	db     *sql.DB
	dbPath string

	now func() time.Time
	in  io.Reader

	closeLog func() error
}

// openRuntime loads the config, opens the log and the database.
func openRuntime(globals *GlobalFlags) (*runtime, error) {
	configPath := config.DefaultConfigPath
	if globals != nil && globals.Config != "" {
		configPath = globals.Config
	}
	cfg, err := config.LoadOrCreateAt(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	verbose := globals != nil && globals.Verbose
	logger, closeLog, err := logging.Open(cfg.Logging, logPath, verbose)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		closeLog()
		return nil, err
	}
	store, db, err := openStore(dbPath, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		db:       db,
		dbPath:   dbPath,
		now:      time.Now,
		in:       os.Stdin,
		closeLog: closeLog,
	}, nil
}

// Close releases the store, the database and the log file.
func (rt *runtime) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
	if rt.db != nil {
		rt.db.Close()
	}
	if rt.closeLog != nil {
		rt.closeLog()
	}
}

// openStore opens the database at dbPath, runs migrations, and returns a
// ready-to-use store and the underlying *sql.DB.
func openStore(dbPath string, logger *slog.Logger) (*storage.SQLiteStore, *sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	applied, err := runner.Run()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	if applied > 0 {
		logger.Info("database migrated", "path", dbPath, "migrations", applied)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

func (rt *runtime) clock() time.Time {
	if rt.now != nil {
		return rt.now()
	}
	return time.Now()
}

func (rt *runtime) input() io.Reader {
	if rt.in != nil {
		return rt.in
	}
	return os.Stdin
}

func (rt *runtime) location() *time.Location {
	loc, err := rt.cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// calendar builds the query engine's calendar from config.
func (rt *runtime) calendar() (nlp.Calendar, error) {
	loc, err := rt.cfg.Location()
	if err != nil {
		return nlp.Calendar{}, err
	}
	first, err := rt.cfg.FirstDayOfWeek()
	if err != nil {
		return nlp.Calendar{}, err
	}
	now := rt.now
	if now == nil {
		now = time.Now
	}
	return nlp.Calendar{Now: now, Location: loc, FirstDayOfWeek: first}, nil
}

// lexicon is the built-in lexicon plus the families listed in config.
func (rt *runtime) lexicon() nlp.Lexicon {
	lex := nlp.DefaultLexicon()
	for _, v := range rt.cfg.Lexicon.Vegetables {
		lex = lex.WithVegetable(v.Canonical, v.Variants...)
	}
	return lex
}

// engine loads every stored record and builds a query engine over them.
func (rt *runtime) engine(ctx context.Context) (*nlp.Engine, error) {
	records, err := rt.store.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	cal, err := rt.calendar()
	if err != nil {
		return nil, err
	}
	return nlp.New(dataset.NewStore(records),
		nlp.WithCalendar(cal),
		nlp.WithLexicon(rt.lexicon()),
		nlp.WithLogger(rt.logger),
	)
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime reads a user-supplied date or date-time in loc. RFC 3339
// values keep their own offset.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
