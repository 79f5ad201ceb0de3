// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SeedDemoData inserts a demo user and a couple of demo polls. It runs
// once at startup when -seed-demo is set and only if the poll table is
// empty; there is no background or periodic generation.
func SeedDemoData(db *sql.DB) error {
	var pollCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM poll`).Scan(&pollCount); err != nil {
		return fmt.Errorf("failed to count polls: %w", err)
	}
	if pollCount > 0 {
		slog.Info("demo seed skipped, polls already exist", "count", pollCount)
		return nil
	}

	userID := uuid.NewString()
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO app_user (id, username, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4)
	`, userID, "demo", now, now)
	if err != nil {
		return fmt.Errorf("failed to insert demo user: %w", err)
	}

	demos := []struct {
		question string
		options  []string
		expires  *time.Time
	}{
		{
			question: "Which deploy window works best for the team?",
			options:  []string{"Monday morning", "Wednesday afternoon", "Friday evening"},
		},
		{
			question: "Where should the next offsite be?",
			options:  []string{"Mountains", "Beach", "City", "Stay remote"},
			expires:  ptr(now.Add(7 * 24 * time.Hour)),
		},
	}

	for _, d := range demos {
		optionsJSON, err := json.Marshal(d.options)
		if err != nil {
			return fmt.Errorf("failed to marshal demo options: %w", err)
		}

		_, err = db.Exec(`
			INSERT INTO poll (id, question, options, created_by, created_at, updated_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), d.question, string(optionsJSON), userID, now, now, d.expires)
		if err != nil {
			return fmt.Errorf("failed to insert demo poll: %w", err)
		}
	}

	slog.Info("demo data seeded", "polls", len(demos))
	return nil
}

func ptr(t time.Time) *time.Time { return &t }
