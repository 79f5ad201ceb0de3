// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared by
the handlers.

# Identity

VoterIdentity is the one deliberately non-obvious type here. A vote is
owned by exactly one identity: an authenticated user id, or the client
address of an anonymous voter. Rather than two optional fields whose
mutual exclusivity is checked at runtime, VoterIdentity is a tagged
record - Kind picks the arm, and the constructors UserIdentity and
AnonymousIdentity are the only way to build one.

# Error reasons

Every error body carries a short machine-checkable reason code
(ErrorResponse.Error) from the Reason* constants, plus a human-readable
message. Validation failures additionally carry per-field messages in
Fields; the UI renders these directly.

# JSON conventions

The wire format is camelCase. Vote identities (user id, ip address)
never appear on the wire; tallies are aggregate-only.
*/
package models
