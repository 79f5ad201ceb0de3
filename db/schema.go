// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// dbType selects the dialect: "postgres" or "sqlite".
func CreateSchema(db *sql.DB, dbType string) error {
	schema := sqliteSchema
	if dbType == "postgres" {
		schema = postgresSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The vote table carries the one-vote-per-identity invariant:
//
//   - CHECK: exactly one of user_id / ip_address is set
//   - UNIQUE (poll_id, user_id): one vote per authenticated user per poll
//   - UNIQUE (poll_id, ip_address): one vote per address among anonymous
//     votes
//
// NULLs are distinct under UNIQUE in both dialects, so the two identity
// strategies never collide with each other. These constraints, not the
// handlers' pre-flight SELECTs, are what make concurrent duplicate votes
// lose: the second insert fails with a unique violation.

const postgresSchema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    last_seen_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    options JSONB NOT NULL,
    created_by TEXT NOT NULL REFERENCES app_user(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_created_at ON poll(created_at);
CREATE INDEX IF NOT EXISTS idx_poll_created_by ON poll(created_by);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    user_id TEXT,
    ip_address TEXT,
    option_index INTEGER NOT NULL CHECK (option_index >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    CHECK ((user_id IS NULL) <> (ip_address IS NULL)),
    UNIQUE (poll_id, user_id),
    UNIQUE (poll_id, ip_address)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_user_id ON vote(user_id);
CREATE INDEX IF NOT EXISTS idx_vote_ip_address ON vote(ip_address);
CREATE INDEX IF NOT EXISTS idx_vote_created_at ON vote(created_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_seen_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    options TEXT NOT NULL,
    created_by TEXT NOT NULL REFERENCES app_user(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_created_at ON poll(created_at);
CREATE INDEX IF NOT EXISTS idx_poll_created_by ON poll(created_by);

CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    user_id TEXT,
    ip_address TEXT,
    option_index INTEGER NOT NULL CHECK (option_index >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK ((user_id IS NULL) <> (ip_address IS NULL)),
    UNIQUE (poll_id, user_id),
    UNIQUE (poll_id, ip_address)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_user_id ON vote(user_id);
CREATE INDEX IF NOT EXISTS idx_vote_ip_address ON vote(ip_address);
CREATE INDEX IF NOT EXISTS idx_vote_created_at ON vote(created_at);
`
