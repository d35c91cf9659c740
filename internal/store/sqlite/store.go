// Package sqlite provides SQLite-backed persistence for the Estante catalog.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// dateAddedFormat is the stored timestamp layout, kept compatible with
// pre-existing databases: day/month/year hour:minute, local time.
const dateAddedFormat = "02/01/2006 15:04"

// Store provides SQLite-backed persistence for the Estante catalog.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// connPragmas is appended to the DSN so the driver applies the pragmas
// on every pooled connection, not just the first. busy_timeout and
// case_sensitive_like are per-connection settings; an Exec after Open
// would only configure whichever connection happened to run it.
// Title search is contractually a case-sensitive substring match.
const connPragmas = "?_pragma=journal_mode(WAL)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=case_sensitive_like(1)"

// Open creates a SQLite store at the given path. It configures WAL mode,
// sets pragmas, runs the schema, and applies the cover-column migration.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows a single writer; keep the pool small.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	s := &Store{db: db, logger: logger}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate brings pre-existing databases up to the current schema.
// Databases created before covers existed lack the capa column; adding
// it leaves existing rows untouched (NULL cover). Idempotent.
func (s *Store) migrate() error {
	hasCapa, err := s.hasColumn("livros", "capa")
	if err != nil {
		return err
	}
	if hasCapa {
		return nil
	}

	s.logger.Info("adding capa column to livros table")
	if _, err := s.db.Exec("ALTER TABLE livros ADD COLUMN capa TEXT"); err != nil {
		return fmt.Errorf("add capa column: %w", err)
	}
	return nil
}

// hasColumn reports whether the table already has the named column.
func (s *Store) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// nullString returns a sql.NullString, mapping "" to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// stringValue unwraps a nullable column into a plain string.
func stringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
