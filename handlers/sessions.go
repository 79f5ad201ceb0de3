// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pollcast/auth"
	"pollcast/cliparse"
	"pollcast/db"
	"pollcast/middleware"
	"pollcast/models"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
// Creates a user and issues the session token the poll-creation and
// authenticated-vote paths require.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 2 || len(username) > 50 {
		middleware.ValidationErrorResponse(w, []models.FieldError{
			{Field: "username", Message: "username must be 2-50 characters"},
		})
		return
	}

	userID := uuid.NewString()
	now := time.Now()

	// The username UNIQUE constraint decides ties between concurrent
	// registrations of the same name.
	_, err := h.db.Exec(`
		INSERT INTO app_user (id, username, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4)
	`, userID, username, now, now)

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, models.ReasonUsernameTaken, "Username already taken")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", userID, "username", username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID:       userID,
		Username:     username,
		SessionToken: auth.NewSessionToken(userID, h.cfg.SessionTokenSalt),
	})
}

// Me handles GET /auth/me
// Returns the user behind the presented session token and bumps
// last_seen_at.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionTokenSalt)
	if !ok {
		return
	}

	var resp models.MeResponse
	err := h.db.QueryRow(`
		SELECT id, username, created_at FROM app_user WHERE id = $1
	`, userID).Scan(&resp.UserID, &resp.Username, &resp.CreatedAt)

	if err == sql.ErrNoRows {
		// Valid signature but no row: the salt was reused across
		// environments or the user row was removed.
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonAuthRequired, "Unknown user")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStorageFailure, "Database error")
		return
	}

	_, err = h.db.Exec(`
		UPDATE app_user SET last_seen_at = $1 WHERE id = $2
	`, time.Now(), userID)
	if err != nil {
		slog.Warn("failed to update last_seen_at", "error", err, "user_id", userID)
		// Non-fatal: the lookup succeeded
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
