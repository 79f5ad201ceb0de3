// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes using Go 1.22+ method+pattern
routing on the standard ServeMux.

# Routes

	GET    /health              liveness probe
	POST   /auth/register       create user, issue session token
	GET    /auth/me             session introspection
	POST   /polls               create poll (session required)
	GET    /polls               list polls, newest first
	PUT    /polls               update own poll
	DELETE /polls?id=           delete own poll (votes cascade)
	GET    /polls/{id}          fetch one poll
	POST   /polls/{id}/vote     submit a vote
	GET    /polls/{id}/vote     live tally

Every application route is wrapped in middleware.WithLogging; CORS is
applied once around the whole mux in main.
*/
package router
