// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"pollcast/cliparse"
	"pollcast/middleware"
	"pollcast/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /polls/:id/vote
// Read-only tally recomputed from stored votes on every call; clients
// poll this on a fixed interval for the live results view, so no state
// is cached between requests.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll id is required")
		return
	}

	poll, err := loadPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	counts, total, err := tallyVotes(h.db, pollID, len(poll.Options))
	if err != nil {
		slog.Error("failed to tally votes", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResultsResponse{
		VoteCounts: counts,
		TotalVotes: total,
		Options:    poll.Options,
	})
}
