// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers:
request logging, CORS, JSON encoding helpers, structured error bodies,
and client address resolution.

# Error Bodies

ErrorResponse and ValidationErrorResponse emit models.ErrorResponse with
a reason code the caller can switch on. Handlers never write raw storage
error text to the client; unexpected failures are logged with slog and
surfaced as a generic storage_failure.

# Client Address

ClientIP implements the anonymous-identity resolution order: the first
X-Forwarded-For value, then X-Real-IP, then the literal "unknown"
sentinel. The resolved string is the anonymous voter's identity for
duplicate-vote purposes.
*/
package middleware
