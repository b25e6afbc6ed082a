package schedule

import (
	"strings"
	"time"

	"github.com/pickdateai/scheduler-api/internal/models"
)

// parseHM projeta um horário "HH:MM" sobre a data de ref.
func parseHM(ref time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	)
}

// WorkHourForDay devolve a janela de expediente do dia da semana de ref,
// comparando o nome do dia sem diferenciar maiúsculas.
func WorkHourForDay(workHours []models.WorkHour, ref time.Time) *models.WorkHour {
	day := ref.Weekday().String()
	for i := range workHours {
		if strings.EqualFold(workHours[i].Day, day) {
			return &workHours[i]
		}
	}
	return nil
}

// IsCollaboratorAvailable valida se o intervalo [start, end] cabe no
// expediente do colaborador, fora da pausa.
//
// Colaborador sem nenhum expediente cadastrado é tratado como sempre
// disponível. Comportamento herdado; não alterar sem confirmação de produto.
func IsCollaboratorAvailable(workHours []models.WorkHour, start, end time.Time) bool {
	if len(workHours) == 0 {
		return true
	}

	wh := WorkHourForDay(workHours, start)
	if wh == nil || wh.StartTime == "" || wh.EndTime == "" {
		// fechado nesse dia
		return false
	}

	periodStart := parseHM(start, wh.StartTime)
	periodEnd := parseHM(start, wh.EndTime)

	if start.Before(periodStart) || end.After(periodEnd) {
		return false
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		breakStart := parseHM(start, wh.BreakStart)
		breakEnd := parseHM(start, wh.BreakEnd)

		if start.Before(breakEnd) && end.After(breakStart) {
			return false
		}
	}

	return true
}
