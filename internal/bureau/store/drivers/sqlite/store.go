package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/internal/bureau/store/drivers/sqlrepo"
)

var dialect = sqlrepo.Dialect{
	Name:              "sqlite",
	IsUniqueViolation: isUniqueViolation,
}

type Store struct {
	db  *sql.DB
	q   *sqlrepo.Queries
	dsn string
}

// NewStore opens a SQLite database. Use ":memory:" for tests. The pool is
// limited to one connection: SQLite allows a single writer, and each
// in-memory connection would otherwise be its own database.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Store{
		db:  db,
		q:   sqlrepo.New(db, dialect),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Consultations() store.Consultations { return s.q.Consultations() }
func (s *Store) Clients() store.Clients             { return s.q.Clients() }
func (s *Store) Staff() store.StaffMembers          { return s.q.Staff() }
func (s *Store) Contacts() store.Contacts           { return s.q.Contacts() }

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}
