// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Machine-checkable error reason codes (ErrorResponse.Error)
const (
	ReasonValidation     = "validation_error"
	ReasonAuthRequired   = "authentication_required"
	ReasonNotFound       = "not_found"
	ReasonAlreadyVoted   = "already_voted"
	ReasonPollExpired    = "poll_expired"
	ReasonInvalidOption  = "invalid_option"
	ReasonUsernameTaken  = "username_taken"
	ReasonStorageFailure = "storage_failure"
)

// Voter identity kinds
const (
	IdentityUser      = "user"
	IdentityAnonymous = "anonymous"
)

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
}

type CreatePollRequest struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	ExpiresAt string   `json:"expiresAt,omitempty"`
}

type UpdatePollRequest struct {
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	ExpiresAt string   `json:"expiresAt,omitempty"`
}

type SubmitVoteRequest struct {
	// Pointer so a missing field is distinguishable from index 0.
	OptionIndex *int `json:"optionIndex"`
}

// Response types

type RegisterResponse struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	SessionToken string `json:"sessionToken"`
}

type MeResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitVoteResponse struct {
	VoteCounts     []int `json:"voteCounts"`
	TotalVotes     int   `json:"totalVotes"`
	SelectedOption int   `json:"selectedOption"`
}

type PollResultsResponse struct {
	VoteCounts []int    `json:"voteCounts"`
	TotalVotes int      `json:"totalVotes"`
	Options    []string `json:"options"`
}

type DeletePollResponse struct {
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID        string     `json:"id"`
	Question  string     `json:"question"`
	Options   []string   `json:"options"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	// Relative labels for list views, e.g. "3 hours ago" / "in 2 days".
	CreatedAgo string `json:"createdAgo,omitempty"`
	ExpiresIn  string `json:"expiresIn,omitempty"`
}

// Expired reports whether the poll no longer accepts votes at t.
func (p *Poll) Expired(t time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(t)
}

// VoterIdentity is a tagged record: Kind selects exactly one of UserID or
// IPAddress, so a vote can never carry both identities or neither.
type VoterIdentity struct {
	Kind      string
	UserID    string
	IPAddress string
}

func UserIdentity(userID string) VoterIdentity {
	return VoterIdentity{Kind: IdentityUser, UserID: userID}
}

func AnonymousIdentity(ipAddress string) VoterIdentity {
	return VoterIdentity{Kind: IdentityAnonymous, IPAddress: ipAddress}
}

// Error response

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}
