package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

type ComboGormRepository struct {
	db *gorm.DB
}

func NewComboGormRepository(db *gorm.DB) *ComboGormRepository {
	return &ComboGormRepository{db: db}
}

// --------------------------------------------------
// Template
// --------------------------------------------------

func (r *ComboGormRepository) GetComboWithServices(
	ctx context.Context,
	businessID uint,
	comboID uint,
) (*models.Combo, error) {

	var combo models.Combo
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Services.Service").
		Where("id = ? AND business_id = ?", comboID, businessID).
		First(&combo).Error; err != nil {
		return nil, err
	}
	return &combo, nil
}

func (r *ComboGormRepository) CountInUseClientCombos(
	ctx context.Context,
	comboID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientCombo{}).
		Where(
			"combo_id = ? AND status IN ?",
			comboID,
			[]string{string(domain.StatusActive), string(domain.StatusPartiallyUsed)},
		).
		Count(&count).Error

	return count, err
}

// DeleteComboCascade revalida o uso dentro da mesma transação: uma
// venda que entra entre a checagem do use case e o delete não pode
// deixar ClientCombo apontando para template apagado.
func (r *ComboGormRepository) DeleteComboCascade(
	ctx context.Context,
	comboID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var inUse int64
		if err := tx.
			Model(&models.ClientCombo{}).
			Where(
				"combo_id = ? AND status IN ?",
				comboID,
				[]string{string(domain.StatusActive), string(domain.StatusPartiallyUsed)},
			).
			Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return httperr.ErrBusiness("combo_in_use")
		}

		if err := tx.
			Where("combo_id = ?", comboID).
			Delete(&models.ComboService{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Combo{}, comboID).Error
	})
}

// --------------------------------------------------
// Instância (ClientCombo)
// --------------------------------------------------

func (r *ComboGormRepository) GetClient(
	ctx context.Context,
	businessID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", clientID, businessID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClientComboWithSessions grava o pai e as sessões juntos;
// o Create aninhado do gorm já roda em uma transação.
func (r *ComboGormRepository) CreateClientComboWithSessions(
	ctx context.Context,
	cc *models.ClientCombo,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(cc).Error
	})
}

func (r *ComboGormRepository) GetClientCombo(
	ctx context.Context,
	businessID uint,
	clientComboID uint,
) (*models.ClientCombo, error) {

	var cc models.ClientCombo
	if err := r.db.WithContext(ctx).
		Preload("Sessions").
		Where("id = ? AND business_id = ?", clientComboID, businessID).
		First(&cc).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *ComboGormRepository) GetClientComboBySession(
	ctx context.Context,
	businessID uint,
	sessionID uint,
) (*models.ClientCombo, error) {

	var session models.ClientComboSession
	if err := r.db.WithContext(ctx).
		First(&session, sessionID).Error; err != nil {
		return nil, err
	}

	return r.GetClientCombo(ctx, businessID, session.ClientComboID)
}

// SaveClientCombo persiste status do pai e contadores das sessões
// na mesma transação.
func (r *ComboGormRepository) SaveClientCombo(
	ctx context.Context,
	cc *models.ClientCombo,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.ClientCombo{}).
			Where("id = ?", cc.ID).
			Updates(map[string]any{
				"combo_id": cc.ComboID,
				"status":   cc.Status,
			}).Error; err != nil {
			return err
		}

		for i := range cc.Sessions {
			s := &cc.Sessions[i]
			if err := tx.
				Model(&models.ClientComboSession{}).
				Where("id = ?", s.ID).
				Update("used_sessions", s.UsedSessions).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ComboGormRepository) ListClientCombos(
	ctx context.Context,
	businessID uint,
	clientID uint,
) ([]models.ClientCombo, error) {

	q := r.db.WithContext(ctx).
		Preload("Sessions").
		Where("business_id = ?", businessID)

	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}

	var combos []models.ClientCombo
	if err := q.Order("created_at DESC").Find(&combos).Error; err != nil {
		return nil, err
	}
	return combos, nil
}

// Compile-time check
var _ domain.Repository = (*ComboGormRepository)(nil)
