package appointment

import (
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus aplica uma transição pedida pela equipe, carimbando
// CancelledAt/CompletedAt quando for o caso.
func ApplyStatus(ap *models.Appointment, target Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)

	switch target {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusConfirmed, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCompleted, now)
}
