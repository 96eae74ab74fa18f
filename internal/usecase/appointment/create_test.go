package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/domain/schedule"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
	"github.com/StudioAgenda/salon-scheduler/internal/notifications"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo serializa CreateIfFree com mutex, a mesma disciplina que o
// repositório real impõe via transação + lock de linha.
type fakeRepo struct {
	mu            sync.Mutex
	services      map[uint]*models.Service
	professionals map[uint]*models.Professional
	appointments  []*models.Appointment
	nextID        uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:      map[uint]*models.Service{},
		professionals: map[uint]*models.Professional{},
		nextID:        1,
	}
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (f *fakeRepo) GetProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	if pro, ok := f.professionals[id]; ok {
		return pro, nil
	}
	return nil, httperr.ErrBusiness("professional_not_found")
}

func (f *fakeRepo) ListBusyIntervals(
	ctx context.Context,
	professionalID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]schedule.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	busy := []schedule.Interval{}
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if !domain.Status(ap.Status).Blocks() {
			continue
		}
		if ap.StartTime.Before(dayStart) || !ap.StartTime.Before(dayEnd) {
			continue
		}
		busy = append(busy, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return busy, nil
}

func (f *fakeRepo) CreateIfFree(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appointments {
		if existing.ProfessionalID != ap.ProfessionalID {
			continue
		}
		if !domain.Status(existing.Status).Blocks() {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, existing.StartTime, existing.EndTime) {
			return &domain.ConflictError{Start: existing.StartTime, End: existing.EndTime}
		}
	}

	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ProfessionalID == professionalID {
			return ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

type noopRecorder struct{}

func (noopRecorder) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.services[1] = &models.Service{
		ID: 1, Name: "Corte", DurationMin: 30, Active: true,
	}
	repo.professionals[1] = &models.Professional{
		ID: 1, Name: "Ana", IsActive: true, StartWork: "10:00", EndWork: "18:00",
	}
	return repo
}

func newCreateUC(repo domain.Repository) *CreateAppointment {
	return NewCreateAppointment(
		repo,
		audit.NewDispatcher(noopRecorder{}),
		notifications.NewDispatcher(notifications.NewLogSender()),
		cache.NewNoop(),
		time.UTC,
	)
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func bookingInput(timeStr string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ServiceID:      1,
		ProfessionalID: 1,
		ClientName:     "Cliente",
		ClientPhone:    "0888123456",
		Date:           "2026-03-02",
		Time:           timeStr,
	}
}

// ======================================================
// TESTS
// ======================================================

func TestCreateAppointment_Success(t *testing.T) {
	uc := newCreateUC(seededRepo())

	ap, err := uc.Execute(context.Background(), bookingInput("10:00"), testNow)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending status, got %s", ap.Status)
	}
	if ap.Reference == "" {
		t.Fatalf("expected a booking reference")
	}
	if !ap.EndTime.Equal(ap.StartTime.Add(30 * time.Minute)) {
		t.Fatalf("end time must be start + service duration")
	}
}

func TestCreateAppointment_InvalidPhone(t *testing.T) {
	uc := newCreateUC(seededRepo())

	in := bookingInput("10:00")
	in.ClientPhone = "abc"

	_, err := uc.Execute(context.Background(), in, testNow)
	if !httperr.IsBusiness(err, "invalid_phone") {
		t.Fatalf("expected invalid_phone, got %v", err)
	}
}

func TestCreateAppointment_PastRejectedEvenWithoutConflict(t *testing.T) {
	uc := newCreateUC(seededRepo())

	in := bookingInput("10:00")
	now := time.Date(2026, 3, 2, 10, 1, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), in, now)
	if !httperr.IsBusiness(err, "past_booking") {
		t.Fatalf("expected past_booking, got %v", err)
	}
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	uc := newCreateUC(seededRepo())

	_, err := uc.Execute(context.Background(), bookingInput("17:45"), testNow)
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("expected outside_working_hours, got %v", err)
	}

	_, err = uc.Execute(context.Background(), bookingInput("09:30"), testNow)
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("expected outside_working_hours, got %v", err)
	}
}

func TestCreateAppointment_InactiveProfessional(t *testing.T) {
	repo := seededRepo()
	repo.professionals[1].IsActive = false
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), bookingInput("10:00"), testNow)
	if !httperr.IsBusiness(err, "professional_not_found") {
		t.Fatalf("expected professional_not_found, got %v", err)
	}
}

func TestCreateAppointment_ConflictCarriesWindow(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, bookingInput("10:00"), testNow); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.Execute(ctx, bookingInput("10:15"), testNow)
	ce, ok := domain.AsConflict(err)
	if !ok {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Window() != "10:00 - 10:30" {
		t.Fatalf("expected window 10:00 - 10:30, got %q", ce.Window())
	}
}

// Dois clientes disputando o mesmo horário: exatamente um vence,
// o outro recebe conflito. Nunca os dois, nunca nenhum.
func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, bookingInput("11:00"), testNow)
		}(i)
	}
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if _, ok := domain.AsConflict(err); ok {
			conflicts++
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d (%v)",
			successes, conflicts, errs)
	}
}
