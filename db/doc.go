// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and storage-error
classification.

# Schema Creation

CreateSchema initializes all required tables for the configured dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. Both Postgres (lib/pq) and SQLite (modernc.org/sqlite) are
supported; queries elsewhere use $1-style placeholders, which both
engines accept.

# Tables

  - app_user: minimal user registry backing session tokens
  - poll: question, ordered option labels (JSON array), owner, expiry
  - vote: one row per identity per poll

# Relationships

	app_user 1──* poll
	poll 1──* vote

Votes cascade on poll deletion.

# Uniqueness

The vote table enforces the one-vote-per-identity rule with two unique
constraints - (poll_id, user_id) and (poll_id, ip_address) - and a CHECK
that exactly one identity column is set. IsUniqueViolation classifies
the driver-specific constraint errors so handlers can translate a lost
race into the same already-voted response as a pre-flight hit.
*/
package db
