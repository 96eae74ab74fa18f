package schedule

import "time"

// Passo padrão entre inícios de slot
const DefaultStepMinutes = 30

// ======================================================
// GERAÇÃO DE SLOTS
// ======================================================

// GenerateSlots enumera os inícios candidatos dentro do expediente
// [workStart, workEnd), em ordem crescente. Um candidato só é emitido
// se o serviço inteiro couber no expediente (cur + duration <= workEnd).
// Serviço maior que a janela devolve lista vazia, não é erro.
func GenerateSlots(workStart, workEnd time.Time, duration, step time.Duration) []time.Time {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !workEnd.After(workStart) {
		return nil
	}

	var slots []time.Time
	for cur := workStart; !cur.Add(duration).After(workEnd); cur = cur.Add(step) {
		slots = append(slots, cur)
	}
	return slots
}

// ======================================================
// FILTRO DE DISPONIBILIDADE
// ======================================================

// AvailableSlots filtra os candidatos: descarta quem cruza um intervalo
// ocupado e quem já começou (cur < now). Puro, sem acesso a dados;
// "now" é parâmetro explícito para teste determinístico.
// Preserva a ordem do gerador.
func AvailableSlots(candidates []time.Time, busy []Interval, duration time.Duration, now time.Time) []time.Time {
	available := make([]time.Time, 0, len(candidates))

	for _, cur := range candidates {
		if cur.Before(now) {
			continue
		}
		if overlapsAny(cur, cur.Add(duration), busy) {
			continue
		}
		available = append(available, cur)
	}

	return available
}
