// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"pollcast/auth"
	"pollcast/middleware"
	"pollcast/models"
)

// sessionUserID returns the authenticated user id, or "" when the
// request carries no valid X-Session-Token.
func sessionUserID(r *http.Request, salt string) string {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		return ""
	}
	userID, err := auth.ParseSessionToken(token, salt)
	if err != nil {
		return ""
	}
	return userID
}

// resolveVoterIdentity picks the vote's identity: the session user when
// a valid session is present, otherwise the client address.
func resolveVoterIdentity(r *http.Request, salt string) models.VoterIdentity {
	if userID := sessionUserID(r, salt); userID != "" {
		return models.UserIdentity(userID)
	}
	return models.AnonymousIdentity(middleware.ClientIP(r))
}

// requireUser writes a 401 and returns false when the request has no
// valid session.
func requireUser(w http.ResponseWriter, r *http.Request, salt string) (string, bool) {
	userID := sessionUserID(r, salt)
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized,
			models.ReasonAuthRequired, "A valid session is required")
		return "", false
	}
	return userID, true
}

// loadPoll fetches one poll by id. Returns sql.ErrNoRows when absent.
func loadPoll(dbc *sql.DB, pollID string) (*models.Poll, error) {
	var poll models.Poll
	var optionsJSON []byte
	var expiresAt sql.NullTime

	err := dbc.QueryRow(`
		SELECT id, question, options, created_by, created_at, updated_at, expires_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Question, &optionsJSON, &poll.CreatedBy,
		&poll.CreatedAt, &poll.UpdatedAt, &expiresAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(optionsJSON, &poll.Options); err != nil {
		return nil, fmt.Errorf("failed to decode poll options: %w", err)
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		poll.ExpiresAt = &t
	}

	return &poll, nil
}

// decoratePoll fills the relative time labels used by list views.
func decoratePoll(poll *models.Poll) {
	poll.CreatedAgo = humanize.Time(poll.CreatedAt)
	if poll.ExpiresAt != nil {
		poll.ExpiresIn = humanize.Time(*poll.ExpiresAt)
	}
}

// tallyVotes recomputes per-option counts for a poll from stored votes.
// Counts are a zero-initialized array of option length; a stored index
// outside [0, optionCount) is skipped rather than trusted, so the total
// always equals the array sum.
func tallyVotes(dbc *sql.DB, pollID string, optionCount int) ([]int, int, error) {
	rows, err := dbc.Query(`
		SELECT option_index FROM vote WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make([]int, optionCount)
	total := 0
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, 0, err
		}
		if idx >= 0 && idx < optionCount {
			counts[idx]++
			total++
		}
	}

	return counts, total, rows.Err()
}

// parseRFC3339 parses an RFC3339 timestamp and normalizes it to UTC.
func parseRFC3339(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
