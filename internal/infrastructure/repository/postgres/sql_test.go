package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("pq: connection refused")) {
		t.Fatalf("expected false for unrelated error")
	}
	// Wrapped sql.ErrNoRows is deliberately not matched: sqlx returns
	// the sentinel bare.
	if isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected false for wrapped sentinel")
	}
}

func TestNullableString(t *testing.T) {
	if nullableString("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	got := nullableString("Old Trafford")
	if got == nil || *got != "Old Trafford" {
		t.Fatalf("unexpected pointer value: %v", got)
	}
}

func TestNullableInt64(t *testing.T) {
	if nullableInt64(0) != nil {
		t.Fatalf("expected nil for zero")
	}
	got := nullableInt64(39)
	if got == nil || *got != 39 {
		t.Fatalf("unexpected pointer value: %v", got)
	}
}

func TestNullConversions(t *testing.T) {
	if nullInt64ToInt64(sql.NullInt64{}) != 0 {
		t.Fatalf("expected 0 for null int")
	}
	if nullInt64ToInt64(sql.NullInt64{Int64: 7, Valid: true}) != 7 {
		t.Fatalf("expected 7 for valid int")
	}
	if nullStringToString(sql.NullString{}) != "" {
		t.Fatalf("expected empty string for null")
	}
	if nullStringToString(sql.NullString{String: "England", Valid: true}) != "England" {
		t.Fatalf("unexpected string conversion")
	}
}
