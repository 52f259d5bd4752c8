// Package sqlrepo holds the SQL repositories shared by the sqlite and
// postgres drivers. Queries are written with ? placeholders and rebound by
// the driver's Dialect.
package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/applybureau/bureau/internal/bureau/store"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect adapts queries and errors to a driver.
type Dialect struct {
	Name string

	// Rebind rewrites ? placeholders. Nil leaves queries untouched.
	Rebind func(query string) string

	// IsUniqueViolation reports a unique constraint failure.
	IsUniqueViolation func(err error) bool
}

// RebindDollar rewrites ? placeholders as $1, $2, ...
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Queries binds a connection or transaction to a dialect.
type Queries struct {
	db DBTX
	d  Dialect
}

func New(db DBTX, d Dialect) *Queries {
	return &Queries{db: db, d: d}
}

func (q *Queries) Consultations() store.Consultations { return &consultationsRepo{q: q} }
func (q *Queries) Clients() store.Clients             { return &clientsRepo{q: q} }
func (q *Queries) Staff() store.StaffMembers          { return &staffRepo{q: q} }
func (q *Queries) Contacts() store.Contacts           { return &contactsRepo{q: q} }

func (q *Queries) rebind(query string) string {
	if q.d.Rebind == nil {
		return query
	}
	return q.d.Rebind(query)
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.rebind(query), args...)
	if err != nil && q.d.IsUniqueViolation != nil && q.d.IsUniqueViolation(err) {
		return nil, store.ErrAlreadyExists
	}
	return res, err
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.rebind(query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.rebind(query), args...)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	v := nt.Time.UTC()
	return &v
}

// encodeJSON stores list fields as JSON text, which both drivers accept.
func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(s string, dst any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), dst)
}

// likePattern builds a LIKE pattern matching s anywhere, with the wildcard
// characters in s escaped by backslash.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func notFoundIfNone(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
