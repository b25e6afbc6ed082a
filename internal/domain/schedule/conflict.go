package schedule

import (
	"time"

	"github.com/pickdateai/scheduler-api/internal/models"
)

// HasTimeConflict verifica se o intervalo candidato colide com algum
// agendamento existente. O agendamento com id == excludeID é ignorado,
// permitindo reagendar sem conflitar consigo mesmo (excludeID zero não
// exclui ninguém).
//
// Os chamadores devem passar apenas agendamentos com status "scheduled".
func HasTimeConflict(start, end time.Time, excludeID uint, existing []models.Appointment) bool {
	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}

		// início do candidato dentro de [start, end)
		startsInside := !start.Before(ap.StartTime) && start.Before(ap.EndTime)

		// fim do candidato dentro de (start, end]
		endsInside := end.After(ap.StartTime) && !end.After(ap.EndTime)

		// candidato engloba o existente
		contains := !start.After(ap.StartTime) && !end.Before(ap.EndTime)

		if startsInside || endsInside || contains {
			return true
		}
	}

	return false
}
