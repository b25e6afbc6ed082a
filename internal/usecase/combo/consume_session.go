package combo

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/audit"
	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
	"github.com/pickdateai/scheduler-api/internal/timezone"
)

type ConsumeSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewConsumeSession(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	log *logrus.Logger,
) *ConsumeSession {
	return &ConsumeSession{
		repo:  repo,
		audit: auditor,
		log:   log,
	}
}

// Execute consome uma sessão do combo do cliente. As regras (saldo,
// status do pai, validade) vivem no domínio; aqui só carregamos,
// aplicamos e persistimos.
func (uc *ConsumeSession) Execute(
	ctx context.Context,
	businessID uint,
	sessionID uint,
) (*models.ClientCombo, error) {

	cc, err := uc.repo.GetClientComboBySession(ctx, businessID, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	now := timezone.Now()
	if err := domain.Consume(cc, sessionID, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveClientCombo(ctx, cc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Action:     "combo_session_consumed",
		Entity:     "client_combo_session",
		EntityID:   &sessionID,
		Metadata: map[string]any{
			"client_combo_id": cc.ID,
			"status":          cc.Status,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"client_combo_id": cc.ID,
		"session_id":      sessionID,
		"status":          cc.Status,
	}).Info("combo session consumed")

	return cc, nil
}
