package postgres

import (
	"context"
	"database/sql"

	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/internal/bureau/store/drivers/sqlrepo"
)

type txStore struct {
	tx *sql.Tx
	q  *sqlrepo.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: sqlrepo.New(tx, dialect)}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Consultations() store.Consultations { return t.q.Consultations() }
func (t *txStore) Clients() store.Clients             { return t.q.Clients() }
func (t *txStore) Staff() store.StaffMembers          { return t.q.Staff() }
func (t *txStore) Contacts() store.Contacts           { return t.q.Contacts() }
