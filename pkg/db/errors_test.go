package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgconn(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "ux_transactions_receipt_number"}

	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(err, "ux_transactions_receipt_number") {
		t.Fatal("expected match on constraint name")
	}
	if IsUniqueViolation(err, "ux_outbox_events_event_aggregate") {
		t.Fatal("unexpected match on different constraint")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "ux_outbox_dlq_event_id"}

	if !IsUniqueViolation(err, "ux_outbox_dlq_event_id") {
		t.Fatal("expected match on pq constraint")
	}
	if IsUniqueViolation(&pq.Error{Code: "23503"}, "") {
		t.Fatal("foreign key violation should not match")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	err := errors.New(`ERROR: duplicate key value violates unique constraint "ux_stations_code" (SQLSTATE 23505)`)

	if !IsUniqueViolation(err, "ux_stations_code") {
		t.Fatal("expected fallback constraint match")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected fallback message match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error should not match")
	}
}
