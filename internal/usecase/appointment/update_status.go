package appointment

import (
	"context"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Cache
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	c cache.Cache,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: auditDisp,
		cache: c,
	}
}

// Execute muda o status de uma reserva do PRÓPRIO profissional.
// Reserva de outro profissional responde como inexistente: não
// revelamos que o id existe.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	professionalID uint,
	userID uint,
	appointmentID uint,
	target string,
	now time.Time,
) (*models.Appointment, error) {

	if !domain.IsStaffTarget(domain.Status(target)) {
		return nil, httperr.ErrBusiness("invalid_status_value")
	}

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.ApplyStatus(ap, domain.Status(target), now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// cancelamento libera o horário; qualquer mudança invalida o dia
	_ = uc.cache.Delete(ctx, cache.BusyKey(
		ap.ProfessionalID,
		ap.StartTime.Format("2006-01-02"),
	))

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": target},
	})

	return ap, nil
}
