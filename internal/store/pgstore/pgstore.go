// Package pgstore keeps the same document-per-record model as jsonstore but
// persists into Postgres JSONB, so deployments that outgrow flat files can
// switch backends without touching domain logic.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/hirewise/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// Open connects, pings, and ensures the documents table exists. Insertion
// order is preserved through the seq column; updates keep the original seq.
func Open(ctx context.Context, connString string) (*Store, error) {
	if connString == "" {
		return nil, fmt.Errorf("pgstore: empty connection string")
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("pgstore: parse config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}

	if _, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS documents (
            collection TEXT NOT NULL,
            id TEXT NOT NULL,
            seq BIGSERIAL,
            doc JSONB NOT NULL,
            PRIMARY KEY (collection, id)
        )`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ensure documents table: %w", err)
	}
	if _, err := pool.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS idx_documents_collection_seq
        ON documents (collection, seq)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ensure seq index: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("pgstore: %s/%s: %w", collection, id, store.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("pgstore: get %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("pgstore: decode record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string, out any) error {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM documents WHERE collection = $1 ORDER BY seq`,
		collection,
	)
	if err != nil {
		return fmt.Errorf("pgstore: list %s: %w", collection, err)
	}
	defer rows.Close()
	return decodeRows(rows, collection, out)
}

// Update wraps fn in a single Postgres transaction. Reads through the
// transaction take row locks, so concurrent accept-quote flows serialize the
// same way the jsonstore mutex does.
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgstore: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgstore: commit tx: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

type pgTx struct {
	ctx context.Context
	tx  pgx.Tx
}

func (t *pgTx) Get(collection, id string, out any) error {
	var doc []byte
	err := t.tx.QueryRow(t.ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
		collection, id,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("pgstore: %s/%s: %w", collection, id, store.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("pgstore: get %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("pgstore: decode record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (t *pgTx) Put(collection, id string, v any) error {
	if id == "" {
		return fmt.Errorf("pgstore: put into %s with empty id", collection)
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("pgstore: encode record %s/%s: %w", collection, id, err)
	}
	if _, err := t.tx.Exec(t.ctx, `
        INSERT INTO documents (collection, id, doc)
        VALUES ($1, $2, $3::jsonb)
        ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc`,
		collection, id, doc,
	); err != nil {
		return fmt.Errorf("pgstore: put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (t *pgTx) List(collection string, out any) error {
	rows, err := t.tx.Query(t.ctx,
		`SELECT doc FROM documents WHERE collection = $1 ORDER BY seq FOR UPDATE`,
		collection,
	)
	if err != nil {
		return fmt.Errorf("pgstore: list %s: %w", collection, err)
	}
	defer rows.Close()
	return decodeRows(rows, collection, out)
}

func decodeRows(rows pgx.Rows, collection string, out any) error {
	body := make([]byte, 0, 2)
	body = append(body, '[')
	first := true
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return fmt.Errorf("pgstore: scan %s: %w", collection, err)
		}
		if !first {
			body = append(body, ',')
		}
		first = false
		body = append(body, doc...)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("pgstore: iterate %s: %w", collection, err)
	}
	body = append(body, ']')

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("pgstore: decode collection %s: %w", collection, err)
	}
	return nil
}
