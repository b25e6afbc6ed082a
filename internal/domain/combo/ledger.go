package combo

import (
	"time"

	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

// ===============================
// Session Ledger (regras de domínio)
// ===============================

// IsExpired avalia a validade do combo do cliente no instante now.
// Combos sem ExpiresAt não expiram.
func IsExpired(cc *models.ClientCombo, now time.Time) bool {
	return cc.ExpiresAt != nil && !now.Before(*cc.ExpiresAt)
}

// CanConsume valida se uma sessão pode ser consumida.
// Invariantes: used < total; combo pai consumível; não expirado.
func CanConsume(cc *models.ClientCombo, s *models.ClientComboSession, now time.Time) error {
	if !Consumable(Status(cc.Status)) {
		return httperr.ErrBusiness("combo_not_consumable")
	}

	if IsExpired(cc, now) {
		return httperr.ErrBusiness("combo_expired")
	}

	if s.UsedSessions >= s.TotalSessions {
		return httperr.ErrBusiness("no_sessions_left")
	}

	return nil
}

// Consume incrementa o contador da sessão e ajusta o status do combo pai:
// active -> partially_used no primeiro uso; completed quando todas as
// sessões do combo atingem o total. Muta cc e a sessão correspondente
// dentro de cc.Sessions.
func Consume(cc *models.ClientCombo, sessionID uint, now time.Time) error {
	var target *models.ClientComboSession
	for i := range cc.Sessions {
		if cc.Sessions[i].ID == sessionID {
			target = &cc.Sessions[i]
			break
		}
	}
	if target == nil {
		return httperr.ErrBusiness("session_not_found")
	}

	if err := CanConsume(cc, target, now); err != nil {
		return err
	}

	target.UsedSessions++

	if FullyUsed(cc.Sessions) {
		cc.Status = string(StatusCompleted)
		return nil
	}

	if Status(cc.Status) == StatusActive {
		cc.Status = string(StatusPartiallyUsed)
	}

	return nil
}

// FullyUsed informa se todas as sessões do combo foram consumidas.
func FullyUsed(sessions []models.ClientComboSession) bool {
	for _, s := range sessions {
		if s.UsedSessions < s.TotalSessions {
			return false
		}
	}
	return len(sessions) > 0
}

// Remaining soma as sessões ainda disponíveis.
func Remaining(sessions []models.ClientComboSession) int {
	total := 0
	for _, s := range sessions {
		total += s.TotalSessions - s.UsedSessions
	}
	return total
}

// Detach desvincula a instância do template: edições futuras no Combo
// nunca alteram contadores já emitidos.
func Detach(cc *models.ClientCombo) {
	cc.ComboID = nil
	cc.Status = string(StatusDetached)
}
