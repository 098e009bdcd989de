package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "biolink/internal/domain/profile"
	ucprofile "biolink/internal/usecase/profile"
)

type fakeOps struct {
	activated []uuid.UUID
	activErr  error
	stale     []domain.Record
	window    time.Duration
	limit     int
}

func (f *fakeOps) GetPublic(context.Context, string) (ucprofile.Public, error) {
	return ucprofile.Public{}, nil
}

func (f *fakeOps) Signup(context.Context, ucprofile.SignupInput) (domain.Record, error) {
	return domain.Record{}, nil
}

func (f *fakeOps) Activate(_ context.Context, id uuid.UUID) (domain.Record, error) {
	if f.activErr != nil {
		return domain.Record{}, f.activErr
	}
	f.activated = append(f.activated, id)
	return domain.Record{ID: id, Slug: "dra-perez", Status: domain.StatusActive}, nil
}

func (f *fakeOps) StaleReservations(_ context.Context, window time.Duration, limit int) ([]domain.Record, error) {
	f.window, f.limit = window, limit
	return f.stale, nil
}

func TestRunActivate(t *testing.T) {
	id := uuid.New()
	ops := &fakeOps{}
	var out bytes.Buffer

	if err := runActivate(context.Background(), ops, id.String(), &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ops.activated) != 1 || ops.activated[0] != id {
		t.Fatalf("expected %s to be activated, got %v", id, ops.activated)
	}
	if !strings.Contains(out.String(), "activated dra-perez") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunActivate_Errors(t *testing.T) {
	if err := runActivate(context.Background(), &fakeOps{}, "not-a-uuid", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for malformed id")
	}

	ops := &fakeOps{activErr: domain.ErrNotPending}
	err := runActivate(context.Background(), ops, uuid.NewString(), &bytes.Buffer{})
	if !errors.Is(err, domain.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestRunListStale(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	ops := &fakeOps{stale: []domain.Record{
		{ID: uuid.New(), Slug: "old-one", Status: domain.StatusPendingPayment, CreatedAt: now.Add(-90 * time.Minute)},
	}}
	var out bytes.Buffer

	n, err := runListStale(context.Background(), ops, 20*time.Minute, 50, now, &out)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
	if ops.window != 20*time.Minute || ops.limit != 50 {
		t.Fatalf("unexpected window/limit %s/%d", ops.window, ops.limit)
	}
	if !strings.Contains(out.String(), "old-one") || !strings.Contains(out.String(), "1h30m0s") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
