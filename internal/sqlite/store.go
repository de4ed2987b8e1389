// Package sqlite implements the relational backing for the phone book: a
// single phone_book table in an embedded SQLite database (modernc.org/sqlite).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/phonebook/internal/sqlite/migrations"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

const memoryDSN = ":memory:"

// Statements against the phone_book table.
const (
	selectAllSQL = "SELECT name, phone_number, work_number FROM phone_book ORDER BY name"
	selectOneSQL = "SELECT phone_number, work_number FROM phone_book WHERE name = ?"
	insertSQL    = "INSERT INTO phone_book (name, phone_number, work_number) VALUES (?, ?, ?)"
	deleteOneSQL = "DELETE FROM phone_book WHERE name = ?"
	deleteAllSQL = "DELETE FROM phone_book"
)

// Store keeps the phone book in one SQLite table. Mutations run inside a
// transaction; WriteAll clears and refills the table atomically.
type Store struct {
	mu       sync.Mutex
	db       *sql.DB
	location string
	logger   *slog.Logger
}

// migrate applies the embedded schema migrations. Tests replace it.
var migrate = func(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Open opens the database at path, creating the file, its parent directory,
// and the phone_book table if needed. An empty path opens a private
// in-memory database that lives until Close.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "sqlite")

	dsn := memoryDSN
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, types.Unavailable("open", path, fmt.Errorf("creating database directory: %w", err))
		}
		dsn = fileDSN(path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, types.Unavailable("open", path, fmt.Errorf("opening database: %w", err))
	}
	// One connection: an in-memory database exists per connection, and
	// operations are serialized anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, types.Unavailable("open", path, fmt.Errorf("connecting: %w", err))
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, types.Unavailable("open", path, fmt.Errorf("setting busy timeout: %w", err))
	}
	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, types.Unavailable("open", path, err)
	}

	s := newStore(db, path, logger)
	logger.Debug("SQLite store opened", "path", path)
	return s, nil
}

// fileDSN returns a file: URI for path with reserved characters escaped, so
// '?', '#', and '%' in a path are not read as URI syntax.
func fileDSN(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// newStore wraps an already migrated database.
func newStore(db *sql.DB, location string, logger *slog.Logger) *Store {
	return &Store{db: db, location: location, logger: logger}
}

// Path returns the database path, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.location
}

// ReadAll returns every row of phone_book.
func (s *Store) ReadAll() (types.PhoneBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, types.Unavailable("read_all", s.location, types.ErrStoreClosed)
	}

	rows, err := s.db.Query(selectAllSQL)
	if err != nil {
		return nil, types.IOFailure("read_all", s.location, fmt.Errorf("querying phone_book: %w", err))
	}
	defer rows.Close()

	pb := make(types.PhoneBook)
	for rows.Next() {
		var name string
		var e types.Entry
		if err := rows.Scan(&name, &e.Mobile, &e.Work); err != nil {
			return nil, types.IOFailure("read_all", s.location, fmt.Errorf("scanning row: %w", err))
		}
		pb[name] = e
	}
	if err := rows.Err(); err != nil {
		return nil, types.IOFailure("read_all", s.location, fmt.Errorf("iterating rows: %w", err))
	}
	return pb, nil
}

// ReadOne returns the row for name, if any.
func (s *Store) ReadOne(name string) (types.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.Entry{}, false, types.Unavailable("read_one", s.location, types.ErrStoreClosed)
	}

	var e types.Entry
	err := s.db.QueryRow(selectOneSQL, name).Scan(&e.Mobile, &e.Work)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Entry{}, false, nil
	}
	if err != nil {
		return types.Entry{}, false, types.IOFailure("read_one", s.location, fmt.Errorf("querying %q: %w", name, err))
	}
	return e, true, nil
}

// WriteOne replaces any row for name with e.
func (s *Store) WriteOne(name string, e types.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx("write_one", func(tx *sql.Tx) error {
		if _, err := tx.Exec(deleteOneSQL, name); err != nil {
			return fmt.Errorf("deleting %q: %w", name, err)
		}
		if _, err := tx.Exec(insertSQL, name, e.Mobile, e.Work); err != nil {
			return fmt.Errorf("inserting %q: %w", name, err)
		}
		return nil
	})
}

// RemoveOne deletes the row for name. No row is not an error.
func (s *Store) RemoveOne(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.Unavailable("remove_one", s.location, types.ErrStoreClosed)
	}

	res, err := s.db.Exec(deleteOneSQL, name)
	if err != nil {
		return types.IOFailure("remove_one", s.location, fmt.Errorf("deleting %q: %w", name, err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.logger.Debug("remove of absent name", "name", name)
	}
	return nil
}

// WriteAll clears phone_book and inserts pb in a single transaction.
func (s *Store) WriteAll(pb types.PhoneBook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx("write_all", func(tx *sql.Tx) error {
		if _, err := tx.Exec(deleteAllSQL); err != nil {
			return fmt.Errorf("clearing phone_book: %w", err)
		}
		if len(pb) == 0 {
			return nil
		}

		stmt, err := tx.Prepare(insertSQL)
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range pb.Records() {
			if _, err := stmt.Exec(rec.Name, rec.Mobile, rec.Work); err != nil {
				return fmt.Errorf("inserting %q: %w", rec.Name, err)
			}
		}
		return nil
	})
}

// Close closes the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return types.IOFailure("close", s.location, err)
	}
	s.logger.Debug("SQLite store closed", "path", s.location)
	return nil
}

// inTx runs fn in a transaction, committing on success and rolling back on
// any error. The caller must hold s.mu.
func (s *Store) inTx(op string, fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return types.Unavailable(op, s.location, types.ErrStoreClosed)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return types.IOFailure(op, s.location, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return types.IOFailure(op, s.location, err)
	}
	if err := tx.Commit(); err != nil {
		return types.IOFailure(op, s.location, fmt.Errorf("committing: %w", err))
	}
	return nil
}
