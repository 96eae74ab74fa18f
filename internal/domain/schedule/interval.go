package schedule

import "time"

// Intervalo ocupado [Start, End), sempre no mesmo dia/fuso da agenda
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps é o ÚNICO predicado de sobreposição do sistema.
// Leitura (filtro de slots) e escrita (validação de reserva) usam a
// mesma comparação para nunca divergirem.
//
// Intervalos semiabertos: [aStart, aEnd) cruza [bStart, bEnd)
// sse aStart < bEnd && aEnd > bStart. Encostar não é cruzar.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
