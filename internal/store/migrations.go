package store

import (
	"database/sql"
	"fmt"
)

// migrate runs numbered schema migrations in order, tracked by a schema_version row.
func (s *SQLiteStore) migrate() error {
	if err := s.ensureMetadataTable(); err != nil {
		return err
	}

	version, err := s.schemaVersion()
	if err != nil {
		return err
	}

	migrations := []struct {
		version int
		name    string
		fn      func() error
	}{
		{1, "initial_schema", s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			if err := m.fn(); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
			}
			if err := s.setSchemaVersion(m.version); err != nil {
				return fmt.Errorf("failed to record schema version %d: %w", m.version, err)
			}
			version = m.version
		}
	}
	return nil
}

func (s *SQLiteStore) ensureMetadataTable() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value TEXT)`)
	return err
}

func (s *SQLiteStore) schemaVersion() (int, error) {
	var v int
	row := s.db.QueryRow(`SELECT value FROM metadata WHERE key = 'schema_version'`)
	err := row.Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (s *SQLiteStore) setSchemaVersion(v int) error {
	_, err := s.db.Exec(
		`INSERT INTO metadata (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, v)
	return err
}

// migration001InitialSchema creates the cards table and its due-date index, plus a
// small version_update table tracking when the user was last notified of a new
// release.
func (s *SQLiteStore) migration001InitialSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			card_hash TEXT PRIMARY KEY,
			added_at TEXT NOT NULL,
			last_reviewed_at TEXT,
			stability REAL,
			difficulty REAL,
			interval_raw REAL,
			interval_days INTEGER,
			due_date TEXT,
			review_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_due_date ON cards(due_date)`,
		`CREATE TABLE IF NOT EXISTS version_update (
			id INTEGER PRIMARY KEY,
			last_prompted_at TEXT,
			last_version_check_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
