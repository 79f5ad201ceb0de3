// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollcast API server.

Pollcast is a polling service: authenticated users create polls with
2-10 options, anyone votes (authenticated or anonymous, one vote per
identity per poll), and live per-option tallies are recomputed from
stored votes on demand.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_URL=postgres://... SESSION_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d pollcast.db -session-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): Postgres connection string or SQLite file path
  - SESSION_TOKEN_SALT (--session-salt): secret for session token HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - SEED_DEMO (-seed-demo): insert demo polls once at startup

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, polls, voting, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client address resolution
  - models: request/response types and the tagged voter identity
  - auth: session token generation and validation
  - db: schema creation and storage-error classification
  - cliparse: configuration parsing

The one-vote-per-identity guarantee lives in the database: unique
constraints on (poll_id, user_id) and (poll_id, ip_address) serialize
concurrent duplicates, and handlers translate the losing insert's
constraint violation into the already-voted response.

See package documentation for each component.
*/
package main
