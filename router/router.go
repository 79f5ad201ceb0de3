// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"pollcast/cliparse"
	"pollcast/handlers"
	"pollcast/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(sessionHandler.Register))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(sessionHandler.Me))

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("PUT /polls", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /polls", middleware.WithLogging(pollHandler.DeletePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting and live results (public)
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(voteHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{id}/vote", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollcast API v1"))
	})

	return mux
}
