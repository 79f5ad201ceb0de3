// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pollcast/cliparse"
	"pollcast/db"
	"pollcast/middleware"
	"pollcast/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// SubmitVote handles POST /polls/:id/vote
//
// Steps, each short-circuiting on failure: validate body, load poll,
// expiry check, option bounds check, identity resolution, pre-flight
// duplicate check, insert, tally. The pre-flight SELECT is only the
// cheap error path; the vote table's unique constraints are what
// actually close the duplicate race, so a unique violation at insert
// time maps to the same already-voted response.
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "Invalid JSON")
		return
	}

	if req.OptionIndex == nil {
		middleware.ValidationErrorResponse(w, []models.FieldError{
			{Field: "optionIndex", Message: "optionIndex is required"},
		})
		return
	}
	optionIndex := *req.OptionIndex
	if optionIndex < 0 {
		middleware.ValidationErrorResponse(w, []models.FieldError{
			{Field: "optionIndex", Message: "optionIndex must be a non-negative integer"},
		})
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

	now := time.Now()
	if poll.Expired(now) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonPollExpired, "This poll has expired")
		return
	}

	if optionIndex >= len(poll.Options) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidOption, "Selected option does not exist")
		return
	}

	ident := resolveVoterIdentity(r, h.cfg.SessionTokenSalt)

	// Pre-flight duplicate check: cheaper failure than a write attempt.
	var exists bool
	if ident.Kind == models.IdentityUser {
		err = h.db.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM vote WHERE poll_id = $1 AND user_id = $2
			)
		`, pollID, ident.UserID).Scan(&exists)
	} else {
		err = h.db.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM vote WHERE poll_id = $1 AND ip_address = $2 AND user_id IS NULL
			)
		`, pollID, ident.IPAddress).Scan(&exists)
	}
	if err != nil {
		slog.Error("failed to check existing vote", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonAlreadyVoted, alreadyVotedMessage(ident))
		return
	}

	var userID, ipAddress sql.NullString
	if ident.Kind == models.IdentityUser {
		userID = sql.NullString{String: ident.UserID, Valid: true}
	} else {
		ipAddress = sql.NullString{String: ident.IPAddress, Valid: true}
	}

	_, err = h.db.Exec(`
		INSERT INTO vote (id, poll_id, user_id, ip_address, option_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), pollID, userID, ipAddress, optionIndex, now)

	if err != nil {
		if db.IsUniqueViolation(err) {
			// Lost a race with a concurrent request from the same identity.
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonAlreadyVoted, alreadyVotedMessage(ident))
			return
		}
		slog.Error("failed to insert vote", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to submit vote")
		return
	}

	counts, total, err := tallyVotes(h.db, pollID, len(poll.Options))
	if err != nil {
		slog.Error("failed to tally votes", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "identity", ident.Kind, "option_index", optionIndex)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteCounts:     counts,
		TotalVotes:     total,
		SelectedOption: optionIndex,
	})
}

func alreadyVotedMessage(ident models.VoterIdentity) string {
	if ident.Kind == models.IdentityUser {
		return "You have already voted on this poll"
	}
	return "A vote from this address has already been recorded for this poll"
}
