// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides HMAC-signed session tokens.

# Session Tokens

A session token binds a user id to an HMAC-SHA256 signature keyed by the
server's SESSION_TOKEN_SALT:

	token := auth.NewSessionToken(userID, cfg.SessionTokenSalt)

	userID, err := auth.ParseSessionToken(token, cfg.SessionTokenSalt)
	if err != nil {
		// not issued by this server, or tampered with
	}

Tokens are stateless: validation needs no database lookup, and rotating
the salt invalidates every outstanding session at once. Row identifiers
are not minted here; call sites use google/uuid for those.
*/
package auth
