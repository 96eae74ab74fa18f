package appointment

import "github.com/StudioAgenda/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// InitialStatus: toda reserva nasce pendente; nada confirma automaticamente
func InitialStatus() Status {
	return StatusPending
}

// Blocks informa se o status ainda ocupa o horário.
// Só cancelamento libera o slot (comportamento de soft-delete).
func (s Status) Blocks() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// IsStaffTarget: estados que a equipe pode atribuir. "pending" nunca
// é destino válido, nem para voltar atrás.
func IsStaffTarget(target Status) bool {
	switch target {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition valida a máquina de estados:
// pending -> confirmed | cancelled
// confirmed -> completed | cancelled
// cancelled e completed são terminais
func CanTransition(current, target Status) error {
	if !IsStaffTarget(target) {
		return httperr.ErrBusiness("invalid_status_value")
	}

	switch current {
	case StatusPending:
		if target == StatusConfirmed || target == StatusCancelled {
			return nil
		}
	case StatusConfirmed:
		if target == StatusCompleted || target == StatusCancelled {
			return nil
		}
	}

	return httperr.ErrBusiness("invalid_state")
}
