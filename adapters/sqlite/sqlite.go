// Package sqlite provides a core.AuthStorage implementation backed by
// SQLite through database/sql and mattn/go-sqlite3. It suits single-node
// deployments and local development where running Postgres is overkill.
package sqlite

import (
	"database/sql"

	"github.com/fennig/latch/core"
)

var _ core.AuthStorage = (*Adapter)(nil)

type Adapter struct {
	db *sql.DB
}

// New wraps an opened *sql.DB. The caller owns the handle and is
// responsible for closing it.
func New(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// Migrate creates the users and sessions tables if they do not exist.
func (a *Adapter) Migrate() error {
	_, err := a.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT,
    google_id     TEXT UNIQUE,
    microsoft_id  TEXT UNIQUE
);

CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions (user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at);
`
