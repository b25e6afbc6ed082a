package combo

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/audit"
	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

type DetachCombo struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewDetachCombo(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	log *logrus.Logger,
) *DetachCombo {
	return &DetachCombo{
		repo:  repo,
		audit: auditor,
		log:   log,
	}
}

// Execute desvincula a instância do template. As sessões permanecem;
// edições futuras no Combo não mexem mais nesse cliente.
func (uc *DetachCombo) Execute(
	ctx context.Context,
	businessID uint,
	clientComboID uint,
) (*models.ClientCombo, error) {

	cc, err := uc.repo.GetClientCombo(ctx, businessID, clientComboID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_combo_not_found")
	}

	domain.Detach(cc)

	if err := uc.repo.SaveClientCombo(ctx, cc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Action:     "combo_detached",
		Entity:     "client_combo",
		EntityID:   &cc.ID,
	})

	uc.log.WithField("client_combo_id", cc.ID).Info("combo detached from template")

	return cc, nil
}
