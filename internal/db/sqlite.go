package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mithrel/pressgen/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

// openSQLite connects using the modernc.org/sqlite driver and ensures the schema exists.
func openSQLite(ctx context.Context, path string) (*sqliteStore, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS releases (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  source TEXT NOT NULL,
  notice TEXT NOT NULL DEFAULT '',
  hash TEXT NOT NULL,
  title TEXT NOT NULL,
  form TEXT NOT NULL,
  generated TEXT NOT NULL,
  debug TEXT,
  created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_releases_created ON releases(created_at DESC, id);
CREATE INDEX IF NOT EXISTS idx_releases_kind_created ON releases(kind, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_releases_hash ON releases(hash);
`)
	return err
}

func (s *sqliteStore) Put(ctx context.Context, r api.Record) error {
	if r.ID == "" {
		return ErrConflict
	}
	form, err := json.Marshal(r.Form)
	if err != nil {
		return err
	}
	gen, err := json.Marshal(r.Generated)
	if err != nil {
		return err
	}
	var dbg []byte
	if r.Debug != nil {
		if dbg, err = json.Marshal(r.Debug); err != nil {
			return err
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM releases WHERE id=?`, r.ID).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO releases(id, kind, source, notice, hash, title, form, generated, debug, created_at) VALUES(?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.Kind, string(r.Source), r.Notice, r.Hash, r.Generated.Title, string(form), string(gen), nullBytes(dbg), r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert release: %w", err)
	}
	return tx.Commit()
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

const selectCols = `SELECT id, kind, source, notice, hash, form, generated, debug, created_at FROM releases`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (api.Record, error) {
	var r api.Record
	var source, form, gen string
	var dbg sql.NullString
	if err := row.Scan(&r.ID, &r.Kind, &source, &r.Notice, &r.Hash, &form, &gen, &dbg, &r.CreatedAt); err != nil {
		return api.Record{}, err
	}
	r.Source = api.Source(source)
	if err := json.Unmarshal([]byte(form), &r.Form); err != nil {
		return api.Record{}, fmt.Errorf("decode form %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(gen), &r.Generated); err != nil {
		return api.Record{}, fmt.Errorf("decode generated %s: %w", r.ID, err)
	}
	if dbg.Valid && dbg.String != "" {
		r.Debug = &api.Debug{}
		if err := json.Unmarshal([]byte(dbg.String), r.Debug); err != nil {
			return api.Record{}, fmt.Errorf("decode debug %s: %w", r.ID, err)
		}
	}
	return r, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (api.Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectCols+` WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return api.Record{}, ErrNotFound
	}
	return r, err
}

func (s *sqliteStore) List(ctx context.Context, q api.ListQuery) ([]api.Record, error) {
	query := selectCols
	args := []any{}
	if q.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, q.Kind)
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	// A negative LIMIT means no limit in SQLite.
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM releases WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
