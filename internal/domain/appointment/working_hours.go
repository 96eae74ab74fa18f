package appointment

import (
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

// WorkWindow resolve o expediente do profissional para um dia concreto,
// ancorando as horas "HH:MM" na data/fuso pedidos. Janela invertida ou
// ilegível é erro de configuração, não de usuário.
func WorkWindow(
	pro *models.Professional,
	date time.Time,
) (time.Time, time.Time, error) {

	loc := date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	start, ok := parseHM(pro.StartWork)
	if !ok {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_working_hours")
	}

	end, ok := parseHM(pro.EndWork)
	if !ok {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_working_hours")
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_working_hours")
	}

	return start, end, nil
}

// IsWithinWorkingHours valida se [start, end) cabe no expediente do dia
func IsWithinWorkingHours(
	pro *models.Professional,
	start time.Time,
	end time.Time,
) (bool, error) {

	workStart, workEnd, err := WorkWindow(pro, start)
	if err != nil {
		return false, err
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	return true, nil
}
