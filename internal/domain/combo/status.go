package combo

// ===============================
// ClientCombo Status
// ===============================

type Status string

const (
	StatusActive        Status = "active"
	StatusPartiallyUsed Status = "partially_used"
	StatusCompleted     Status = "completed"
	StatusDetached      Status = "detached"
	StatusExpired       Status = "expired"
)

// Consumable informa se o combo do cliente ainda aceita consumo de sessões.
func Consumable(current Status) bool {
	return current == StatusActive || current == StatusPartiallyUsed
}

// InUse informa se o combo do cliente ainda prende o template
// (bloqueia a exclusão do Combo).
func InUse(current Status) bool {
	return current == StatusActive || current == StatusPartiallyUsed
}

func InitialStatus() Status {
	return StatusActive
}
