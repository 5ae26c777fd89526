package storage

import "database/sql"

// migrateV001 creates the initial schema: weighing records and the import
// batches that produced them. Every statement uses IF NOT EXISTS for
// idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS import_batches (
			id       TEXT PRIMARY KEY,
			source   TEXT NOT NULL DEFAULT '',
			imported INTEGER NOT NULL DEFAULT 0,
			skipped  INTEGER NOT NULL DEFAULT 0,
			ts       TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS records (
			id             INTEGER PRIMARY KEY,
			vegetable_type TEXT NOT NULL,
			weight         REAL NOT NULL CHECK (weight >= 0),
			ts             TEXT NOT NULL,
			batch_id       TEXT REFERENCES import_batches(id) ON DELETE SET NULL,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_records_ts       ON records(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_records_type     ON records(vegetable_type COLLATE NOCASE)`,
		`CREATE INDEX IF NOT EXISTS idx_records_batch    ON records(batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_import_batches_ts ON import_batches(ts)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV002 records whether a weighing came from an import or was entered
// by hand. Rows that predate the column were all imported.
func migrateV002(tx *sql.Tx) error {
	var n int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info('records') WHERE name = 'source'`,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	stmts := []string{
		`ALTER TABLE records ADD COLUMN source TEXT NOT NULL DEFAULT 'import'
			CHECK (source IN ('import', 'manual'))`,
		`CREATE INDEX IF NOT EXISTS idx_records_source ON records(source)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
