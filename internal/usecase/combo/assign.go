package combo

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/audit"
	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AssignComboInput struct {
	BusinessID uint
	ComboID    uint
	ClientID   uint

	ExpiresAt  *time.Time
	AmountPaid float64
}

// ======================================================
// USE CASE
// ======================================================

type AssignCombo struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewAssignCombo(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	log *logrus.Logger,
) *AssignCombo {
	return &AssignCombo{
		repo:  repo,
		audit: auditor,
		log:   log,
	}
}

// Execute vende/atribui um combo a um cliente: cria o ClientCombo e uma
// sessão por ComboService, tudo em uma transação. Os nomes de combo e
// serviço são copiados como retrato do momento da venda.
func (uc *AssignCombo) Execute(
	ctx context.Context,
	in AssignComboInput,
) (*models.ClientCombo, error) {

	template, err := uc.repo.GetComboWithServices(ctx, in.BusinessID, in.ComboID)
	if err != nil {
		return nil, httperr.ErrBusiness("combo_not_found")
	}

	client, err := uc.repo.GetClient(ctx, in.BusinessID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	comboID := template.ID
	cc := &models.ClientCombo{
		BusinessID: in.BusinessID,
		ComboID:    &comboID,
		ClientID:   client.ID,
		ComboName:  template.Name,
		AmountPaid: in.AmountPaid,
		Status:     string(domain.InitialStatus()),
		ExpiresAt:  in.ExpiresAt,
	}

	for _, cs := range template.Services {
		cc.Sessions = append(cc.Sessions, models.ClientComboSession{
			ServiceID:     cs.ServiceID,
			ServiceName:   cs.Service.Name,
			TotalSessions: cs.Quantity,
			UsedSessions:  0,
		})
	}

	if err := uc.repo.CreateClientComboWithSessions(ctx, cc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Action:     "combo_assigned",
		Entity:     "client_combo",
		EntityID:   &cc.ID,
		Metadata: map[string]any{
			"combo_id":  template.ID,
			"client_id": client.ID,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"business_id":     in.BusinessID,
		"client_combo_id": cc.ID,
		"sessions":        len(cc.Sessions),
	}).Info("combo assigned to client")

	return cc, nil
}
