package appointment

import (
	"errors"
	"fmt"
	"time"
)

// ConflictError carrega a janela da reserva existente que cruzou com a
// proposta, para a mensagem ao cliente.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"time conflict with existing appointment (%s - %s)",
		e.Start.Format("15:04"),
		e.End.Format("15:04"),
	)
}

func (e *ConflictError) Window() string {
	return fmt.Sprintf("%s - %s", e.Start.Format("15:04"), e.End.Format("15:04"))
}

func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
