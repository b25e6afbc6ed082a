package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

func seedCombo(t *testing.T, db *gorm.DB, s seed) models.Combo {
	t.Helper()

	combo := models.Combo{
		BusinessID: s.Business.ID,
		Name:       "Pacote Mensal",
		Price:      200,
		Active:     true,
		Services: []models.ComboService{
			{ServiceID: s.Service.ID, Quantity: 4},
		},
	}
	require.NoError(t, db.Create(&combo).Error)
	return combo
}

func newInstance(s seed, combo models.Combo) *models.ClientCombo {
	comboID := combo.ID
	return &models.ClientCombo{
		BusinessID: s.Business.ID,
		ComboID:    &comboID,
		ClientID:   s.Client.ID,
		ComboName:  combo.Name,
		AmountPaid: combo.Price,
		Status:     string(domain.StatusActive),
		Sessions: []models.ClientComboSession{
			{ServiceID: s.Service.ID, ServiceName: s.Service.Name, TotalSessions: 4},
		},
	}
}

func TestCreateClientComboWithSessions(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	cc := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, cc))
	require.NotZero(t, cc.ID)

	got, err := repo.GetClientCombo(ctx, s.Business.ID, cc.ID)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 1)
	assert.Equal(t, "Pacote Mensal", got.ComboName)
	assert.Equal(t, "Corte", got.Sessions[0].ServiceName)
	assert.Equal(t, 4, got.Sessions[0].TotalSessions)
	assert.Equal(t, 0, got.Sessions[0].UsedSessions)
}

func TestSaveClientCombo_PersistsCountersAndStatus(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	cc := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, cc))

	require.NoError(t, domain.Consume(cc, cc.Sessions[0].ID, time.Now()))
	require.NoError(t, repo.SaveClientCombo(ctx, cc))

	got, err := repo.GetClientCombo(ctx, s.Business.ID, cc.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPartiallyUsed), got.Status)
	assert.Equal(t, 1, got.Sessions[0].UsedSessions)
}

func TestSaveClientCombo_Detach(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	cc := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, cc))

	domain.Detach(cc)
	require.NoError(t, repo.SaveClientCombo(ctx, cc))

	got, err := repo.GetClientCombo(ctx, s.Business.ID, cc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ComboID)
	assert.Equal(t, string(domain.StatusDetached), got.Status)
	assert.Equal(t, "Pacote Mensal", got.ComboName, "retrato do nome sobrevive")
}

func TestGetClientComboBySession(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	cc := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, cc))

	got, err := repo.GetClientComboBySession(ctx, s.Business.ID, cc.Sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, cc.ID, got.ID)

	_, err = repo.GetClientComboBySession(ctx, s.Business.ID, 9999)
	assert.Error(t, err)
}

func TestCountInUseClientCombos(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	active := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, active))

	finished := newInstance(s, combo)
	finished.Status = string(domain.StatusCompleted)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, finished))

	count, err := repo.CountInUseClientCombos(ctx, combo.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteComboCascade_RechecksInUseInTx(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	// venda que entrou depois da checagem do use case
	cc := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, cc))

	err := repo.DeleteComboCascade(ctx, combo.ID)
	assert.True(t, httperr.IsBusiness(err, "combo_in_use"))

	var combos, links int64
	db.Model(&models.Combo{}).Count(&combos)
	db.Model(&models.ComboService{}).Count(&links)
	assert.EqualValues(t, 1, combos, "nada apagado quando recusa")
	assert.EqualValues(t, 1, links)
}

func TestDeleteComboCascade(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.DeleteComboCascade(ctx, combo.ID))

	var combos, links int64
	db.Model(&models.Combo{}).Count(&combos)
	db.Model(&models.ComboService{}).Count(&links)
	assert.Zero(t, combos)
	assert.Zero(t, links)
}

func TestListClientCombos_FilterByClient(t *testing.T) {
	db := newTestDB(t)
	s := seedBusiness(t, db)
	combo := seedCombo(t, db, s)
	repo := NewComboGormRepository(db)
	ctx := context.Background()

	other := models.Client{BusinessID: s.Business.ID, Name: "Maria", Phone: "11888880000"}
	require.NoError(t, db.Create(&other).Error)

	mine := newInstance(s, combo)
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, mine))

	hers := newInstance(s, combo)
	hers.ClientID = other.ID
	require.NoError(t, repo.CreateClientComboWithSessions(ctx, hers))

	all, err := repo.ListClientCombos(ctx, s.Business.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyMine, err := repo.ListClientCombos(ctx, s.Business.ID, s.Client.ID)
	require.NoError(t, err)
	require.Len(t, onlyMine, 1)
	assert.Equal(t, mine.ID, onlyMine[0].ID)
}
