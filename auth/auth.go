// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidSession = errors.New("invalid session token")

// NewSessionToken creates a signed session token for a user.
// Format: "<userID>.<HMAC-SHA256(userID)>", URL-safe and unpadded.
// The token is deterministic per (user, salt) and verifiable without a
// server-side session table.
func NewSessionToken(userID, salt string) string {
	return userID + "." + sign(userID, salt)
}

// ParseSessionToken verifies a session token and returns the user ID it
// was issued for. Returns ErrInvalidSession for malformed or tampered
// tokens.
func ParseSessionToken(token, salt string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidSession
	}
	userID := token[:i]
	if !hmac.Equal([]byte(token[i+1:]), []byte(sign(userID, salt))) {
		return "", ErrInvalidSession
	}
	return userID, nil
}

func sign(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	// URL-safe base64 and trimmed padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}
