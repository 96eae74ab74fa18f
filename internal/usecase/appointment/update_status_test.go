package appointment

import (
	"context"
	"testing"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
)

func newStatusUC(repo domain.Repository) *UpdateStatus {
	return NewUpdateStatus(repo, audit.NewDispatcher(noopRecorder{}), cache.NewNoop())
}

func TestUpdateStatus_ConfirmThenComplete(t *testing.T) {
	repo := seededRepo()
	createUC := newCreateUC(repo)
	uc := newStatusUC(repo)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, bookingInput("10:00"), testNow)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	updated, err := uc.Execute(ctx, 1, 1, ap.ID, "confirmed", testNow)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if updated.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	updated, err = uc.Execute(ctx, 1, 1, ap.ID, "completed", testNow)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != string(domain.StatusCompleted) || updated.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp")
	}
}

func TestUpdateStatus_InvalidTargetValue(t *testing.T) {
	repo := seededRepo()
	createUC := newCreateUC(repo)
	uc := newStatusUC(repo)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, bookingInput("10:00"), testNow)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	for _, target := range []string{"pending", "whatever", ""} {
		_, err := uc.Execute(ctx, 1, 1, ap.ID, target, testNow)
		if !httperr.IsBusiness(err, "invalid_status_value") {
			t.Fatalf("target %q: expected invalid_status_value, got %v", target, err)
		}
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := seededRepo()
	createUC := newCreateUC(repo)
	uc := newStatusUC(repo)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, bookingInput("10:00"), testNow)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// pending -> completed pula a confirmação
	if _, err := uc.Execute(ctx, 1, 1, ap.ID, "completed", testNow); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	if _, err := uc.Execute(ctx, 1, 1, ap.ID, "cancelled", testNow); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// cancelada é terminal
	if _, err := uc.Execute(ctx, 1, 1, ap.ID, "confirmed", testNow); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

// Reserva de outro profissional responde como inexistente,
// sem distinguir "não achei" de "não é sua".
func TestUpdateStatus_OtherProfessionalLooksMissing(t *testing.T) {
	repo := seededRepo()
	createUC := newCreateUC(repo)
	uc := newStatusUC(repo)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, bookingInput("10:00"), testNow)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	_, err = uc.Execute(ctx, 2, 2, ap.ID, "confirmed", testNow)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}
