package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"
)

// kvTx groups the statements of one write
type kvTx struct {
	ctx context.Context
	tx  *sql.Tx
}

// withTx runs fn inside a transaction, committing only if fn succeeds
func (s *Store) withTx(ctx context.Context, fn func(*kvTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&kvTx{ctx: ctx, tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// put inserts or replaces a value
func (t *kvTx) put(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().UnixMilli())
	return err
}

// delete removes a value by key
func (t *kvTx) delete(key string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// touch records the time of the write
func (t *kvTx) touch() error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT OR REPLACE INTO meta (key, value) VALUES ('last_write', ?)
	`, strconv.FormatInt(time.Now().UnixMilli(), 10))
	return err
}
