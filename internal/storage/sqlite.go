package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS collections (
	kind    TEXT PRIMARY KEY,
	payload BLOB NOT NULL
);
`

// SQLiteRepository stores each collection as a row in a single-file
// sqlite database. This is the default backend: durable, local, and
// needs no running service.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at
// <dataDir>/chronofy.db and ensures the schema exists.
func OpenSQLite(dataDir string) (*SQLiteRepository, error) {
	if dataDir == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, "chronofy.db")
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Load(ctx context.Context, kind Kind) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE kind = ?`, string(kind),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, kind Kind, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO collections (kind, payload) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload
	`, string(kind), data)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
