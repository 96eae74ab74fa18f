package appointment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/domain/schedule"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
)

const busyCacheTTL = 60 * time.Second

type GetAvailability struct {
	repo  domain.Repository
	cache cache.Cache
	step  time.Duration
}

func NewGetAvailability(repo domain.Repository, c cache.Cache, stepMinutes int) *GetAvailability {
	if stepMinutes <= 0 {
		stepMinutes = schedule.DefaultStepMinutes
	}
	return &GetAvailability{
		repo:  repo,
		cache: c,
		step:  time.Duration(stepMinutes) * time.Minute,
	}
}

// Execute devolve os inícios livres ("HH:MM", ordem crescente) para o
// profissional/serviço/dia. Lado de LEITURA apenas: a lista pode envelhecer
// entre a consulta e a reserva: quem garante o invariante é CreateIfFree.
//
// "now" vem de fora para o corte de horários passados ser testável.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
	now time.Time,
) ([]string, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if svc.DurationMin <= 0 {
		// erro de configuração do serviço, não do cliente
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil || !pro.IsActive {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	workStart, workEnd, err := domain.WorkWindow(pro, in.Date)
	if err != nil {
		return nil, err
	}

	busy, err := uc.busyForDay(ctx, in.ProfessionalID, in.Date)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(svc.DurationMin) * time.Minute

	candidates := schedule.GenerateSlots(workStart, workEnd, duration, uc.step)
	free := schedule.AvailableSlots(candidates, busy, duration, now)

	out := make([]string, 0, len(free))
	for _, slot := range free {
		out = append(out, slot.Format("15:04"))
	}

	return out, nil
}

// busyForDay lê os intervalos ocupados do dia inteiro, com cache curto
// por (profissional, dia). Escritas apagam a chave.
func (uc *GetAvailability) busyForDay(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]schedule.Interval, error) {

	key := cache.BusyKey(professionalID, date.Format("2006-01-02"))

	if raw, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		var busy []schedule.Interval
		if json.Unmarshal(raw, &busy) == nil {
			return busy, nil
		}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	busy, err := uc.repo.ListBusyIntervals(ctx, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(busy); err == nil {
		_ = uc.cache.Set(ctx, key, raw, busyCacheTTL)
	}

	return busy, nil
}
