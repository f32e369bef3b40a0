package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the sqlite-backed archive of cleaned jobs. The cleaning stage writes
// into it, the annotation stage reads match candidates from it. Dedup state
// is NOT kept here; the fingerprint key only stops the same posting being
// archived twice across runs.
type DB struct {
	pool *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	fingerprint   TEXT PRIMARY KEY,
	source        TEXT NOT NULL DEFAULT '',
	job_id        TEXT NOT NULL DEFAULT '',
	company_name  TEXT NOT NULL,
	job_title     TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	education     TEXT NOT NULL DEFAULT '',
	salary        TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	requirements  TEXT NOT NULL DEFAULT '',
	apply_url     TEXT NOT NULL,
	deadline      TEXT NOT NULL DEFAULT '',
	publish_time  TEXT NOT NULL DEFAULT '',
	cleaned_time  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_jobs_location ON jobs(location);
`

func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite wants a single writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(schema); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.pool == nil {
		return nil
	}
	return d.pool.Close()
}
