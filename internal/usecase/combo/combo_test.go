package combo

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/audit"
	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

// fakeComboRepo mantém template e instâncias em memória.
type fakeComboRepo struct {
	template models.Combo
	client   models.Client

	instances []models.ClientCombo
	deleted   bool
	nextID    uint
}

func newFakeComboRepo() *fakeComboRepo {
	return &fakeComboRepo{
		template: models.Combo{
			ID:         10,
			BusinessID: 1,
			Name:       "Pacote Mensal",
			Price:      200,
			Active:     true,
			Services: []models.ComboService{
				{ID: 1, ComboID: 10, ServiceID: 5, Service: models.Service{ID: 5, Name: "Corte"}, Quantity: 2},
				{ID: 2, ComboID: 10, ServiceID: 6, Service: models.Service{ID: 6, Name: "Barba"}, Quantity: 1},
			},
		},
		client: models.Client{ID: 4, BusinessID: 1, Name: "João", Phone: "11999990000"},
		nextID: 100,
	}
}

func (f *fakeComboRepo) GetComboWithServices(_ context.Context, businessID, comboID uint) (*models.Combo, error) {
	if f.deleted || businessID != f.template.BusinessID || comboID != f.template.ID {
		return nil, gorm.ErrRecordNotFound
	}
	c := f.template
	return &c, nil
}

func (f *fakeComboRepo) CountInUseClientCombos(_ context.Context, comboID uint) (int64, error) {
	var count int64
	for _, cc := range f.instances {
		if cc.ComboID != nil && *cc.ComboID == comboID && domain.InUse(domain.Status(cc.Status)) {
			count++
		}
	}
	return count, nil
}

func (f *fakeComboRepo) DeleteComboCascade(ctx context.Context, comboID uint) error {
	// como o repositório real, revalida o uso dentro da "transação"
	inUse, _ := f.CountInUseClientCombos(ctx, comboID)
	if inUse > 0 {
		return httperr.ErrBusiness("combo_in_use")
	}
	if comboID == f.template.ID {
		f.deleted = true
	}
	return nil
}

func (f *fakeComboRepo) GetClient(_ context.Context, businessID, clientID uint) (*models.Client, error) {
	if businessID != f.client.BusinessID || clientID != f.client.ID {
		return nil, gorm.ErrRecordNotFound
	}
	c := f.client
	return &c, nil
}

func (f *fakeComboRepo) CreateClientComboWithSessions(_ context.Context, cc *models.ClientCombo) error {
	cc.ID = f.nextID
	f.nextID++
	for i := range cc.Sessions {
		cc.Sessions[i].ID = f.nextID
		cc.Sessions[i].ClientComboID = cc.ID
		f.nextID++
	}
	f.instances = append(f.instances, *cc)
	return nil
}

func (f *fakeComboRepo) GetClientCombo(_ context.Context, businessID, clientComboID uint) (*models.ClientCombo, error) {
	for i := range f.instances {
		if f.instances[i].ID == clientComboID && f.instances[i].BusinessID == businessID {
			cc := f.instances[i]
			cc.Sessions = append([]models.ClientComboSession(nil), f.instances[i].Sessions...)
			return &cc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeComboRepo) GetClientComboBySession(ctx context.Context, businessID, sessionID uint) (*models.ClientCombo, error) {
	for i := range f.instances {
		for _, s := range f.instances[i].Sessions {
			if s.ID == sessionID {
				return f.GetClientCombo(ctx, businessID, f.instances[i].ID)
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeComboRepo) SaveClientCombo(_ context.Context, cc *models.ClientCombo) error {
	for i := range f.instances {
		if f.instances[i].ID == cc.ID {
			f.instances[i] = *cc
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeComboRepo) ListClientCombos(_ context.Context, businessID, clientID uint) ([]models.ClientCombo, error) {
	var out []models.ClientCombo
	for _, cc := range f.instances {
		if cc.BusinessID != businessID {
			continue
		}
		if clientID != 0 && cc.ClientID != clientID {
			continue
		}
		out = append(out, cc)
	}
	return out, nil
}

var _ domain.Repository = (*fakeComboRepo)(nil)

// --------------------------------------------------

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newDispatcher(log *logrus.Logger) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), log)
}

func assign(t *testing.T, repo *fakeComboRepo) *models.ClientCombo {
	t.Helper()

	log := silentLogger()
	cc, err := NewAssignCombo(repo, newDispatcher(log), log).Execute(context.Background(), AssignComboInput{
		BusinessID: 1,
		ComboID:    10,
		ClientID:   4,
		AmountPaid: 180,
	})
	require.NoError(t, err)
	return cc
}

func TestAssignCombo(t *testing.T) {
	repo := newFakeComboRepo()

	cc := assign(t, repo)

	assert.Equal(t, string(domain.StatusActive), cc.Status)
	assert.Equal(t, "Pacote Mensal", cc.ComboName)
	assert.Equal(t, 180.0, cc.AmountPaid)

	require.Len(t, cc.Sessions, 2, "uma sessão por serviço do template")
	assert.Equal(t, "Corte", cc.Sessions[0].ServiceName)
	assert.Equal(t, 2, cc.Sessions[0].TotalSessions)
	assert.Equal(t, "Barba", cc.Sessions[1].ServiceName)
	assert.Equal(t, 1, cc.Sessions[1].TotalSessions)
	assert.Equal(t, 3, domain.Remaining(cc.Sessions))
}

func TestAssignCombo_UnknownClient(t *testing.T) {
	repo := newFakeComboRepo()
	log := silentLogger()

	_, err := NewAssignCombo(repo, newDispatcher(log), log).Execute(context.Background(), AssignComboInput{
		BusinessID: 1,
		ComboID:    10,
		ClientID:   999,
	})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestConsumeSession_FullCycle(t *testing.T) {
	repo := newFakeComboRepo()
	cc := assign(t, repo)

	log := silentLogger()
	uc := NewConsumeSession(repo, newDispatcher(log), log)

	corte := cc.Sessions[0].ID
	barba := cc.Sessions[1].ID

	got, err := uc.Execute(context.Background(), 1, corte)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPartiallyUsed), got.Status)

	_, err = uc.Execute(context.Background(), 1, corte)
	require.NoError(t, err)

	got, err = uc.Execute(context.Background(), 1, barba)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	assert.Equal(t, 0, domain.Remaining(got.Sessions))

	// saldo zerado: recusa
	_, err = uc.Execute(context.Background(), 1, corte)
	assert.True(t, httperr.IsBusiness(err, "combo_not_consumable"))
}

func TestConsumeSession_Expired(t *testing.T) {
	repo := newFakeComboRepo()
	cc := assign(t, repo)

	yesterday := time.Now().Add(-24 * time.Hour)
	cc.ExpiresAt = &yesterday
	require.NoError(t, repo.SaveClientCombo(context.Background(), cc))

	log := silentLogger()
	_, err := NewConsumeSession(repo, newDispatcher(log), log).Execute(context.Background(), 1, cc.Sessions[0].ID)
	assert.True(t, httperr.IsBusiness(err, "combo_expired"))
}

func TestDetachCombo(t *testing.T) {
	repo := newFakeComboRepo()
	cc := assign(t, repo)

	log := silentLogger()
	got, err := NewDetachCombo(repo, newDispatcher(log), log).Execute(context.Background(), 1, cc.ID)
	require.NoError(t, err)

	assert.Nil(t, got.ComboID)
	assert.Equal(t, string(domain.StatusDetached), got.Status)
	assert.Equal(t, "Pacote Mensal", got.ComboName, "retrato do nome sobrevive ao desvínculo")
	assert.Len(t, got.Sessions, 2)
}

func TestDeleteCombo_BlockedWhileInUse(t *testing.T) {
	repo := newFakeComboRepo()
	assign(t, repo)

	log := silentLogger()
	uc := NewDeleteCombo(repo, newDispatcher(log), log)

	err := uc.Execute(context.Background(), 1, 10)
	assert.True(t, httperr.IsBusiness(err, "combo_in_use"))
	assert.False(t, repo.deleted, "nada apagado quando recusa")
}

func TestDeleteCombo_AfterDetach(t *testing.T) {
	repo := newFakeComboRepo()
	cc := assign(t, repo)

	log := silentLogger()
	_, err := NewDetachCombo(repo, newDispatcher(log), log).Execute(context.Background(), 1, cc.ID)
	require.NoError(t, err)

	// desvinculado não prende mais o template
	err = NewDeleteCombo(repo, newDispatcher(log), log).Execute(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, repo.deleted)
}
