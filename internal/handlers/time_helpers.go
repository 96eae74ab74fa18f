package handlers

import (
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/timezone"
)

// datas de query e de payload são sempre interpretadas no fuso do salão
func parseDateInSalon(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}
