package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veggievision/lokatani/internal/dataset"
)

// tsLayout is fixed width so stored timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000Z07:00"

// Store defines the interface for lokatani data operations.
type Store interface {
	Insert(ctx context.Context, r *dataset.Record, source string) error
	ReplaceAll(ctx context.Context, records []dataset.Record, batch *ImportBatch) error
	Records(ctx context.Context) ([]dataset.Record, error)
	GetAll(ctx context.Context) ([]dataset.Record, error)
	List(ctx context.Context, q ListQuery) ([]dataset.Record, error)
	GetRecord(ctx context.Context, id int) (*dataset.Record, error)
	DeleteRecords(ctx context.Context, ids []int) (int64, error)
	CountBefore(ctx context.Context, t time.Time) (int64, error)
	PruneBefore(ctx context.Context, t time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	LastImport(ctx context.Context) (*ImportBatch, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertRecord *sql.Stmt
	getRecord    *sql.Stmt
	insertBatch  *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertRecord, err = s.db.Prepare(`
		INSERT INTO records (id, vegetable_type, weight, ts, batch_id, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getRecord, err = s.db.Prepare(`
		SELECT id, vegetable_type, weight, ts FROM records WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.insertBatch, err = s.db.Prepare(`
		INSERT INTO import_batches (id, source, imported, skipped, ts)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		tsLayout,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// nullableID stores 0 as NULL so SQLite assigns the next rowid.
func nullableID(id int) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

// Insert stores a single weighing. A zero r.ID is replaced with the id
// SQLite assigns; a zero timestamp becomes now.
func (s *SQLiteStore) Insert(ctx context.Context, r *dataset.Record, source string) error {
	if r.Weight < 0 {
		return fmt.Errorf("weight must not be negative: %v", r.Weight)
	}
	if strings.TrimSpace(r.VegetableType) == "" {
		return fmt.Errorf("vegetable type is required")
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	if source == "" {
		source = SourceManual
	}

	res, err := s.insertRecord.ExecContext(ctx,
		nullableID(r.ID), r.VegetableType, r.Weight, formatTS(r.Timestamp), nil, source,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	r.ID = int(id)
	return nil
}

// ReplaceAll discards every record, manual entries included, and stores
// records in their given order as one import batch. batch.ID and
// batch.Timestamp are filled in; batch.Imported is set to len(records).
func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []dataset.Record, batch *ImportBatch) error {
	batch.ID = uuid.NewString()
	batch.Timestamp = time.Now()
	batch.Imported = len(records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	if _, err := tx.StmtContext(ctx, s.insertBatch).ExecContext(ctx,
		batch.ID, batch.Source, batch.Imported, batch.Skipped, formatTS(batch.Timestamp),
	); err != nil {
		return fmt.Errorf("insert import batch: %w", err)
	}

	insert := tx.StmtContext(ctx, s.insertRecord)
	for _, r := range records {
		if _, err := insert.ExecContext(ctx,
			nullableID(r.ID), r.VegetableType, r.Weight, formatTS(r.Timestamp), batch.ID, SourceImport,
		); err != nil {
			return fmt.Errorf("insert record %d: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Records returns every record in id order, which is import order for
// imported rows. This is the order the query engine loads.
func (s *SQLiteStore) Records(ctx context.Context) ([]dataset.Record, error) {
	return s.scanRecords(ctx, "SELECT id, vegetable_type, weight, ts FROM records ORDER BY id ASC")
}

// GetAll returns every record, newest first.
func (s *SQLiteStore) GetAll(ctx context.Context) ([]dataset.Record, error) {
	return s.scanRecords(ctx, "SELECT id, vegetable_type, weight, ts FROM records ORDER BY ts DESC, id DESC")
}

// List queries the weighing history, newest first, with optional filters.
// A zero Limit means 50; a negative Limit returns every match.
func (s *SQLiteStore) List(ctx context.Context, q ListQuery) ([]dataset.Record, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}

	var clauses []string
	var args []interface{}

	if q.Type != "" {
		clauses = append(clauses, "vegetable_type = ? COLLATE NOCASE")
		args = append(args, q.Type)
	}
	if !q.Since.IsZero() {
		clauses = append(clauses, "ts >= ?")
		args = append(args, formatTS(q.Since))
	}
	if !q.Until.IsZero() {
		clauses = append(clauses, "ts <= ?")
		args = append(args, formatTS(q.Until))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	query := "SELECT id, vegetable_type, weight, ts FROM records" + where +
		" ORDER BY ts DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	return s.scanRecords(ctx, query, args...)
}

// scanRecords executes a query and scans results into records.
func (s *SQLiteStore) scanRecords(ctx context.Context, query string, args ...interface{}) ([]dataset.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []dataset.Record{}
	for rows.Next() {
		var r dataset.Record
		var tsStr string
		if err := rows.Scan(&r.ID, &r.VegetableType, &r.Weight, &tsStr); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Timestamp, err = parseTimestamp(tsStr)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.ID, err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetRecord retrieves a single record by ID.
func (s *SQLiteStore) GetRecord(ctx context.Context, id int) (*dataset.Record, error) {
	var r dataset.Record
	var tsStr string

	err := s.getRecord.QueryRowContext(ctx, id).Scan(&r.ID, &r.VegetableType, &r.Weight, &tsStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("record %d not found", id)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}

	r.Timestamp, err = parseTimestamp(tsStr)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", id, err)
	}
	return &r, nil
}

// DeleteRecords removes the records with the given ids and returns how many
// existed.
func (s *SQLiteStore) DeleteRecords(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE id IN ("+strings.Join(placeholders, ", ")+")", args...,
	)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return res.RowsAffected()
}

// CountBefore counts records with timestamps before t.
func (s *SQLiteStore) CountBefore(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE ts < ?", formatTS(t)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// PruneBefore deletes records with timestamps before t.
func (s *SQLiteStore) PruneBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE ts < ?", formatTS(t))
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	return res.RowsAffected()
}

// PurgeAll deletes all records and import history.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM records",
		"DELETE FROM import_batches",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// LastImport returns the most recent import batch, or nil when nothing has
// been imported.
func (s *SQLiteStore) LastImport(ctx context.Context) (*ImportBatch, error) {
	var b ImportBatch
	var tsStr string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, source, imported, skipped, ts FROM import_batches ORDER BY ts DESC LIMIT 1",
	).Scan(&b.ID, &b.Source, &b.Imported, &b.Skipped, &tsStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("last import: %w", err)
	}
	b.Timestamp, _ = parseTimestamp(tsStr)
	return &b, nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(weight), 0) FROM records",
	).Scan(&stats.TotalRecords, &stats.TotalWeight)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE source = ?", SourceManual,
	).Scan(&stats.ManualRecords)
	if err != nil {
		return nil, fmt.Errorf("count manual records: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalRecords > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM records").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("record time range: %w", err)
		}
		stats.OldestRecord, _ = parseTimestamp(oldestStr)
		stats.NewestRecord, _ = parseTimestamp(newestStr)
	}

	stats.LastImport, err = s.LastImport(ctx)
	if err != nil {
		return nil, err
	}
	stats.DatabaseSizeBytes = s.DatabaseSize(ctx)

	rows, err := s.db.QueryContext(ctx, `
		SELECT MIN(vegetable_type), COUNT(*) AS cnt, SUM(weight)
		FROM records
		GROUP BY LOWER(vegetable_type)
		ORDER BY cnt DESC, MIN(id) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("type totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tt TypeTotal
		if err := rows.Scan(&tt.Type, &tt.Count, &tt.Weight); err != nil {
			return nil, err
		}
		stats.Types = append(stats.Types, tt)
	}

	return stats, rows.Err()
}

// DatabaseSize returns page_count * page_size, which also works for
// in-memory databases.
func (s *SQLiteStore) DatabaseSize(ctx context.Context) int64 {
	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertRecord, s.getRecord, s.insertBatch}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
