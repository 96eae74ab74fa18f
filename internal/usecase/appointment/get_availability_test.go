package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
)

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{
		ProfessionalID: 1,
		ServiceID:      1,
		Date:           time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetAvailability_FullFreeDay(t *testing.T) {
	repo := seededRepo()
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)

	slots, err := uc.Execute(context.Background(), availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "10:00" || slots[15] != "17:30" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestGetAvailability_ExcludesBookedWindow(t *testing.T) {
	repo := seededRepo()
	createUC := newCreateUC(repo)
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)
	ctx := context.Background()

	// duas reservas de 30 min ocupam [10:00, 11:00)
	if _, err := createUC.Execute(ctx, bookingInput("10:00"), testNow); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := createUC.Execute(ctx, bookingInput("10:30"), testNow); err != nil {
		t.Fatalf("booking: %v", err)
	}

	slots, err := uc.Execute(ctx, availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	for _, s := range slots {
		if s == "10:00" || s == "10:30" {
			t.Fatalf("booked slot %s still offered: %v", s, slots)
		}
	}
	if slots[0] != "11:00" {
		t.Fatalf("expected first free slot 11:00, got %v", slots)
	}
}

func TestGetAvailability_Idempotent(t *testing.T) {
	repo := seededRepo()
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)
	ctx := context.Background()

	first, err := uc.Execute(ctx, availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	second, err := uc.Execute(ctx, availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("results differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("results differ at %d: %v vs %v", i, first, second)
		}
	}
}

func TestGetAvailability_CancelFreesSlot(t *testing.T) {
	repo := seededRepo()
	createUC := newCreateUC(repo)
	statusUC := NewUpdateStatus(repo, audit.NewDispatcher(noopRecorder{}), cache.NewNoop())
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, bookingInput("10:00"), testNow)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	slots, err := uc.Execute(ctx, availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if slots[0] == "10:00" {
		t.Fatalf("booked slot must not be offered: %v", slots)
	}

	if _, err := statusUC.Execute(ctx, 1, 1, ap.ID, "cancelled", testNow); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slots, err = uc.Execute(ctx, availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if slots[0] != "10:00" {
		t.Fatalf("cancelled slot must be offered again, got %v", slots)
	}
}

func TestGetAvailability_SkipsPastSlotsToday(t *testing.T) {
	repo := seededRepo()
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)

	// meio do dia: 10:00..12:00 já passaram
	now := time.Date(2026, 3, 2, 12, 10, 0, 0, time.UTC)

	slots, err := uc.Execute(context.Background(), availabilityInput(), now)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	if slots[0] != "12:30" {
		t.Fatalf("expected first slot 12:30, got %v", slots)
	}
}

func TestGetAvailability_UnknownServiceOrProfessional(t *testing.T) {
	repo := seededRepo()
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)
	ctx := context.Background()

	in := availabilityInput()
	in.ServiceID = 99
	if _, err := uc.Execute(ctx, in, testNow); !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}

	in = availabilityInput()
	in.ProfessionalID = 99
	if _, err := uc.Execute(ctx, in, testNow); !httperr.IsBusiness(err, "professional_not_found") {
		t.Fatalf("expected professional_not_found, got %v", err)
	}
}

func TestGetAvailability_ServiceLargerThanWindowIsEmpty(t *testing.T) {
	repo := seededRepo()
	repo.services[1].DurationMin = 481
	uc := NewGetAvailability(repo, cache.NewNoop(), 30)

	slots, err := uc.Execute(context.Background(), availabilityInput(), testNow)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}
