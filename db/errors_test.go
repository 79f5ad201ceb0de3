// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Error("pq unique_violation should be detected")
	}

	if IsUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("pq foreign_key_violation is not a unique violation")
	}

	wrapped := fmt.Errorf("failed to insert vote: %w", &pq.Error{Code: "23505"})
	if !IsUniqueViolation(wrapped) {
		t.Error("wrapped unique_violation should be detected")
	}

	if IsUniqueViolation(errors.New("some other failure")) {
		t.Error("plain errors are not unique violations")
	}

	if IsUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}
