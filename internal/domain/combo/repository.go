package combo

import (
	"context"

	"github.com/pickdateai/scheduler-api/internal/models"
)

type Repository interface {
	// -------- Template --------
	GetComboWithServices(
		ctx context.Context,
		businessID uint,
		comboID uint,
	) (*models.Combo, error)

	// CountInUseClientCombos conta instâncias active/partially_used
	// referenciando o template.
	CountInUseClientCombos(
		ctx context.Context,
		comboID uint,
	) (int64, error)

	// DeleteComboCascade remove ComboServices e o Combo em uma única
	// transação, revalidando lá dentro que nenhuma instância
	// active/partially_used prende o template (combo_in_use).
	DeleteComboCascade(
		ctx context.Context,
		comboID uint,
	) error

	// -------- Instância --------
	GetClient(
		ctx context.Context,
		businessID uint,
		clientID uint,
	) (*models.Client, error)

	// CreateClientComboWithSessions cria o ClientCombo e todas as
	// sessões em uma única transação.
	CreateClientComboWithSessions(
		ctx context.Context,
		cc *models.ClientCombo,
	) error

	GetClientCombo(
		ctx context.Context,
		businessID uint,
		clientComboID uint,
	) (*models.ClientCombo, error)

	// GetClientComboBySession carrega o combo pai (com todas as
	// sessões) a partir do id de uma sessão.
	GetClientComboBySession(
		ctx context.Context,
		businessID uint,
		sessionID uint,
	) (*models.ClientCombo, error)

	// SaveClientCombo persiste status do pai e contadores das sessões
	// em uma única transação.
	SaveClientCombo(
		ctx context.Context,
		cc *models.ClientCombo,
	) error

	ListClientCombos(
		ctx context.Context,
		businessID uint,
		clientID uint,
	) ([]models.ClientCombo, error)
}
