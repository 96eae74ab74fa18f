package appointment

import (
	"context"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/domain/schedule"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	// -------- Busy intervals (read side) --------
	ListBusyIntervals(
		ctx context.Context,
		professionalID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]schedule.Interval, error)

	// -------- Appointment (create / conflict) --------
	//
	// CreateIfFree é o guardião real do invariante: revalida a
	// sobreposição contra o estado ATUAL e insere na mesma transação.
	// Em conflito devolve *ConflictError com a janela existente.
	CreateIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Schedule view --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
