package combo

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/audit"
	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
)

type DeleteCombo struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewDeleteCombo(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	log *logrus.Logger,
) *DeleteCombo {
	return &DeleteCombo{
		repo:  repo,
		audit: auditor,
		log:   log,
	}
}

// Execute apaga o template do combo. Recusa sem tocar em nada se ainda
// existir ClientCombo ativo ou parcialmente usado referenciando ele.
func (uc *DeleteCombo) Execute(
	ctx context.Context,
	businessID uint,
	comboID uint,
) error {

	template, err := uc.repo.GetComboWithServices(ctx, businessID, comboID)
	if err != nil {
		return httperr.ErrBusiness("combo_not_found")
	}

	inUse, err := uc.repo.CountInUseClientCombos(ctx, template.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return httperr.ErrBusiness("combo_in_use")
	}

	if err := uc.repo.DeleteComboCascade(ctx, template.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Action:     "combo_deleted",
		Entity:     "combo",
		EntityID:   &template.ID,
	})

	uc.log.WithField("combo_id", template.ID).Info("combo template deleted")

	return nil
}
