package validators

import (
	"strings"
	"time"
)

var weekdays = map[string]bool{
	"sunday":    true,
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
}

// IsClock valida um horário "HH:MM" (24h).
func IsClock(hm string) bool {
	if hm == "" {
		return false
	}
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// IsWeekdayName valida nomes de dia da semana em inglês,
// sem diferenciar maiúsculas.
func IsWeekdayName(day string) bool {
	return weekdays[strings.ToLower(strings.TrimSpace(day))]
}
