package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
	"github.com/StudioAgenda/salon-scheduler/internal/notifications"
	"github.com/StudioAgenda/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID      uint
	ProfessionalID uint

	// Cliente logado é opcional
	UserID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notifications.Dispatcher
	cache    cache.Cache
	loc      *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier *notifications.Dispatcher,
	c cache.Cache,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
		cache:    c,
		loc:      loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute cria a reserva com status "pending". A lista de horários que o
// cliente viu pode estar velha: a checagem de sobreposição roda de novo,
// atômica, dentro de CreateIfFree.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
	now time.Time,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Telefone
	// --------------------------------------------------
	if !validators.IsPhoneValid(in.ClientPhone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	// --------------------------------------------------
	// Data / hora no fuso do salão
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Nada de reservar no passado
	// --------------------------------------------------
	if start.Before(now) {
		return nil, httperr.ErrBusiness("past_booking")
	}

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Profissional ativo + expediente
	// --------------------------------------------------
	pro, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil || !pro.IsActive {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	ok, err := domain.IsWithinWorkingHours(pro, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// Validação de sobreposição + inserção (atômico)
	// --------------------------------------------------
	ap := &models.Appointment{
		Reference:      uuid.NewString(),
		ProfessionalID: in.ProfessionalID,
		ServiceID:      svc.ID,
		UserID:         in.UserID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		ClientEmail:    in.ClientEmail,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateIfFree(ctx, ap); err != nil {
		if _, isConflict := domain.AsConflict(err); isConflict {
			uc.audit.Dispatch(audit.Event{
				UserID: in.UserID,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"professional_id": in.ProfessionalID,
					"start":           start,
					"end":             end,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// Cache do dia fica velho → apaga
	// --------------------------------------------------
	_ = uc.cache.Delete(ctx, cache.BusyKey(in.ProfessionalID, start.Format("2006-01-02")))

	// --------------------------------------------------
	// Auditoria + notificação (nunca desfazem a reserva)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifier.Dispatch(notifications.BookingEvent{
		Appointment:  *ap,
		Service:      *svc,
		Professional: *pro,
	})

	return ap, nil
}
