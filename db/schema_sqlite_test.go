// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"pollcast/cliparse"
)

// openSQLite opens a throwaway file database through the same DSN path
// main uses, so foreign key enforcement is on exactly as in production.
func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	cfg := cliparse.Config{
		DatabaseType: "sqlite",
		DatabaseURL:  "file:" + filepath.Join(t.TempDir(), "pollcast_test.db"),
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.DSN())
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	return conn
}

func seedSQLitePoll(t *testing.T, conn *sql.DB) (userID, pollID string) {
	t.Helper()

	userID = uuid.NewString()
	pollID = uuid.NewString()
	now := time.Now()

	if _, err := conn.Exec(`
		INSERT INTO app_user (id, username, created_at, last_seen_at)
		VALUES ($1, 'alice', $2, $2)
	`, userID, now); err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	if _, err := conn.Exec(`
		INSERT INTO poll (id, question, options, created_by, created_at, updated_at)
		VALUES ($1, 'Constraint check poll', '["A","B"]', $2, $3, $3)
	`, pollID, userID, now); err != nil {
		t.Fatalf("Failed to insert poll: %v", err)
	}

	return userID, pollID
}

func TestSQLiteCreateSchemaIdempotent(t *testing.T) {
	conn := openSQLite(t)

	if err := CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}
}

func TestSQLiteForeignKeysEnforced(t *testing.T) {
	conn := openSQLite(t)
	seedSQLitePoll(t, conn)

	// A vote pointing at a poll that does not exist must be rejected,
	// not silently stored.
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, ip_address, option_index, created_at)
		VALUES ($1, 'ghost', '10.0.0.1', 0, $2)
	`, uuid.NewString(), time.Now())
	if err == nil {
		t.Error("Expected a foreign key violation for a vote on a missing poll")
	}
}

func TestSQLiteDeleteCascadesVotes(t *testing.T) {
	conn := openSQLite(t)
	userID, pollID := seedSQLitePoll(t, conn)
	now := time.Now()

	if _, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, user_id, option_index, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, uuid.NewString(), pollID, userID, now); err != nil {
		t.Fatalf("Failed to insert vote: %v", err)
	}
	if _, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, ip_address, option_index, created_at)
		VALUES ($1, $2, '10.0.0.1', 1, $3)
	`, uuid.NewString(), pollID, now); err != nil {
		t.Fatalf("Failed to insert anonymous vote: %v", err)
	}

	if _, err := conn.Exec(`DELETE FROM poll WHERE id = $1`, pollID); err != nil {
		t.Fatalf("Failed to delete poll: %v", err)
	}

	var orphans int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&orphans); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Expected votes to cascade on poll delete, %d rows remain", orphans)
	}
}

func TestSQLiteUniqueViolationClassified(t *testing.T) {
	conn := openSQLite(t)
	userID, pollID := seedSQLitePoll(t, conn)
	now := time.Now()

	if _, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, user_id, option_index, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, uuid.NewString(), pollID, userID, now); err != nil {
		t.Fatalf("First vote should succeed: %v", err)
	}

	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, user_id, option_index, created_at)
		VALUES ($1, $2, $3, 1, $4)
	`, uuid.NewString(), pollID, userID, now)
	if !IsUniqueViolation(err) {
		t.Errorf("Expected a unique violation for duplicate user vote, got %v", err)
	}
}
