// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP API.

# Handlers

  - SessionHandler: user registration and session token introspection
  - PollHandler: poll CRUD, owner-scoped updates and deletes
  - VoteHandler: vote intake with duplicate prevention
  - ResultsHandler: on-demand tallies for the live results view

# Vote intake

SubmitVote validates the body, loads the poll, rejects expired polls and
out-of-range option indexes, then resolves the voter identity: the
session user when a valid X-Session-Token is present, otherwise the
client address from the forwarding headers. A pre-flight SELECT gives
duplicate voters a fast 400, but correctness under concurrency comes
from the vote table's unique constraints - when two requests from one
identity race, the losing insert's unique violation is translated into
the same already-voted response.

# Ownership

Update and delete run as single statements scoped by created_by. Zero
affected rows - whether the poll is missing or owned by someone else -
returns 404, so callers cannot probe for existence.
*/
package handlers
