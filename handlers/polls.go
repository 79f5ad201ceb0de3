// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pollcast/cliparse"
	"pollcast/middleware"
	"pollcast/models"
)

// Poll input bounds
const (
	questionMinLen = 5
	questionMaxLen = 160
	optionsMin     = 2
	optionsMax     = 10
	optionMaxLen   = 50
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// validatePollInput trims and checks question/options/expiry, returning
// normalized values plus per-field errors. expiresAt "" means no expiry.
func validatePollInput(question string, options []string, expiresAt string) (string, []string, *time.Time, []models.FieldError) {
	var fields []models.FieldError

	question = strings.TrimSpace(question)
	if len(question) < questionMinLen || len(question) > questionMaxLen {
		fields = append(fields, models.FieldError{
			Field:   "question",
			Message: "question must be 5-160 characters",
		})
	}

	trimmed := make([]string, 0, len(options))
	for _, opt := range options {
		trimmed = append(trimmed, strings.TrimSpace(opt))
	}

	if len(trimmed) < optionsMin || len(trimmed) > optionsMax {
		fields = append(fields, models.FieldError{
			Field:   "options",
			Message: "options must have 2-10 entries",
		})
	} else {
		seen := make(map[string]bool, len(trimmed))
		for _, opt := range trimmed {
			if len(opt) < 1 || len(opt) > optionMaxLen {
				fields = append(fields, models.FieldError{
					Field:   "options",
					Message: "each option must be 1-50 characters",
				})
				break
			}
			if seen[opt] {
				fields = append(fields, models.FieldError{
					Field:   "options",
					Message: "options must be unique",
				})
				break
			}
			seen[opt] = true
		}
	}

	var expiry *time.Time
	if expiresAt != "" {
		t, err := parseRFC3339(expiresAt)
		if err != nil {
			fields = append(fields, models.FieldError{
				Field:   "expiresAt",
				Message: "expiresAt must be an RFC3339 timestamp",
			})
		} else {
			expiry = &t
		}
	}

	return question, trimmed, expiry, fields
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionTokenSalt)
	if !ok {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "Invalid JSON")
		return
	}

	question, options, expiry, fields := validatePollInput(req.Question, req.Options, req.ExpiresAt)
	if len(fields) > 0 {
		middleware.ValidationErrorResponse(w, fields)
		return
	}

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		slog.Error("failed to marshal options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to create poll")
		return
	}

	pollID := uuid.NewString()
	now := time.Now()

	_, err = h.db.Exec(`
		INSERT INTO poll (id, question, options, created_by, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, pollID, question, string(optionsJSON), userID, now, now, expiry)

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "created_by", userID)

	poll := models.Poll{
		ID:        pollID,
		Question:  question,
		Options:   options,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: expiry,
	}
	decoratePoll(&poll)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls
// Returns all polls, newest first.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, question, options, created_by, created_at, updated_at, expires_at
		FROM poll
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		var optionsJSON []byte
		var expiresAt sql.NullTime

		if err := rows.Scan(
			&poll.ID, &poll.Question, &optionsJSON, &poll.CreatedBy,
			&poll.CreatedAt, &poll.UpdatedAt, &expiresAt,
		); err != nil {
			slog.Error("failed to scan poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
			return
		}

		if err := json.Unmarshal(optionsJSON, &poll.Options); err != nil {
			slog.Error("failed to decode poll options", "error", err, "poll_id", poll.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
			return
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			poll.ExpiresAt = &t
		}

		decoratePoll(&poll)
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/:id
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
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
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	decoratePoll(poll)
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UpdatePoll handles PUT /polls
// Only the creator may update; a non-owner gets the same 404 as a
// missing poll so existence never leaks.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionTokenSalt)
	if !ok {
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "Invalid JSON")
		return
	}

	if req.ID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "id is required")
		return
	}

	question, options, expiry, fields := validatePollInput(req.Question, req.Options, req.ExpiresAt)
	if len(fields) > 0 {
		middleware.ValidationErrorResponse(w, fields)
		return
	}

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		slog.Error("failed to marshal options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to update poll")
		return
	}

	res, err := h.db.Exec(`
		UPDATE poll
		SET question = $1, options = $2, expires_at = $3, updated_at = $4
		WHERE id = $5 AND created_by = $6
	`, question, string(optionsJSON), expiry, time.Now(), req.ID, userID)

	if err != nil {
		slog.Error("failed to update poll", "error", err, "poll_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to update poll")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to update poll")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound, "Poll not found")
		return
	}

	slog.Info("poll updated", "poll_id", req.ID, "updated_by", userID)

	poll, err := loadPoll(h.db, req.ID)
	if err != nil {
		slog.Error("failed to reload poll", "error", err, "poll_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	decoratePoll(poll)
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls?id=
// Owner-scoped like UpdatePoll; votes cascade at the storage layer.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionTokenSalt)
	if !ok {
		return
	}

	pollID := r.URL.Query().Get("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "id query parameter is required")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM poll WHERE id = $1 AND created_by = $2
	`, pollID, userID)

	if err != nil {
		slog.Error("failed to delete poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to delete poll")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to delete poll")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound, "Poll not found")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID, "deleted_by", userID)

	middleware.JSONResponse(w, http.StatusOK, models.DeletePollResponse{
		Message: "Poll deleted",
	})
}
