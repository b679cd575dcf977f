package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

// Repository stores series and studios in Postgres or SQLite.
type Repository struct {
	conn conn
}

// NewRepository uses a Postgres pool. The schema comes from migrations.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{conn: pgxConn{pool: pool}}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS studios (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	country TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS series (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	genre TEXT NOT NULL,
	seasons INTEGER NOT NULL,
	rating REAL NOT NULL,
	year INTEGER NOT NULL,
	finished BOOLEAN NOT NULL,
	studio_id INTEGER REFERENCES studios(id) ON DELETE SET NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_series_studio ON series(studio_id);
CREATE INDEX IF NOT EXISTS idx_series_rating ON series(rating);
`

// OpenSQLite opens (and creates the tables of) a SQLite database file.
func OpenSQLite(path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite tables: %w", err)
	}
	return &Repository{conn: sqlConn{db: db}}, nil
}

func (r *Repository) Close() {
	r.conn.close()
}

// CountSeries is used to decide whether seeding is needed.
func (r *Repository) CountSeries(ctx context.Context) (int, error) {
	var total int
	if err := r.conn.queryRow(ctx, `SELECT COUNT(*) FROM series`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count series: %w", err)
	}
	return total, nil
}
