package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/domain/schedule"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).First(&pro, id).Error; err != nil {
		return nil, err
	}
	return &pro, nil
}

// --------------------------------------------------
// Busy intervals (read side)
// --------------------------------------------------

// ListBusyIntervals devolve [start, end) de toda reserva NÃO cancelada
// do profissional no período. EndTime foi gravado na criação, então não
// há join com a duração do serviço aqui: a leitura é o que está persistido,
// correta mesmo durante uma corrida transitória.
func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	professionalID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]schedule.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"professional_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			professionalID, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, schedule.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	return busy, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateIfFree revalida a sobreposição e insere na MESMA transação.
// No postgres a seleção trava as linhas do profissional (FOR UPDATE);
// o índice único parcial (professional_id, start_time) é o guarda final
// caso duas transações passem juntas pela checagem.
func (r *AppointmentGormRepository) CreateIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.Model(&models.Appointment{})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var conflicts []models.Appointment
		if err := q.
			Where(
				"professional_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
				ap.ProfessionalID,
				ap.EndTime,
				ap.StartTime,
			).
			Order("start_time ASC").
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return &domain.ConflictError{
				Start: conflicts[0].StartTime,
				End:   conflicts[0].EndTime,
			}
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsUniqueViolation(err) {
		// corrida perdida no índice único: mesma resposta de conflito
		return &domain.ConflictError{
			Start: ap.StartTime,
			End:   ap.EndTime,
		}
	}

	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Schedule view
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"professional_id = ? AND start_time >= ? AND start_time < ?",
			professionalID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
