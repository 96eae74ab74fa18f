package appointment

import (
	"testing"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		current Status
		target  Status
		ok      bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, c := range cases {
		err := CanTransition(c.current, c.target)
		if c.ok && err != nil {
			t.Fatalf("%s -> %s: expected ok, got %v", c.current, c.target, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("%s -> %s: expected error", c.current, c.target)
		}
	}
}

func TestPendingNeverStaffTarget(t *testing.T) {
	err := CanTransition(StatusConfirmed, StatusPending)
	if !httperr.IsBusiness(err, "invalid_status_value") {
		t.Fatalf("expected invalid_status_value, got %v", err)
	}
}

func TestStatusBlocks(t *testing.T) {
	if StatusCancelled.Blocks() {
		t.Fatalf("cancelled must not block the slot")
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted} {
		if !s.Blocks() {
			t.Fatalf("%s must block the slot", s)
		}
	}
}

func TestApplyStatusStamps(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %s %v", ap.Status, ap.CancelledAt)
	}

	ap = &models.Appointment{Status: string(StatusConfirmed)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("complete confirmed: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %s %v", ap.Status, ap.CompletedAt)
	}

	ap = &models.Appointment{Status: string(StatusPending)}
	if err := Confirm(ap, now); err != nil {
		t.Fatalf("confirm pending: %v", err)
	}
	if err := Confirm(ap, now); err == nil {
		t.Fatalf("confirming twice must fail")
	}
}
