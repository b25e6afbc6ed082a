package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	"github.com/pickdateai/scheduler-api/internal/models"
	ucCombo "github.com/pickdateai/scheduler-api/internal/usecase/combo"
)

type ComboHandler struct {
	db       *gorm.DB
	deleteUC *ucCombo.DeleteCombo
}

func NewComboHandler(db *gorm.DB, deleteUC *ucCombo.DeleteCombo) *ComboHandler {
	return &ComboHandler{db: db, deleteUC: deleteUC}
}

// --------- Requests ---------

type ComboServiceItem struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateComboRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" binding:"required"`
	Services    []ComboServiceItem `json:"services" binding:"required,min=1"`
}

// --------- Handlers ---------

func (h *ComboHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var combos []models.Combo
	if err := h.db.
		Preload("Services").
		Preload("Services.Service").
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&combos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_combos", "Erro ao listar combos.")
		return
	}

	c.JSON(http.StatusOK, combos)
}

func (h *ComboHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// todos os serviços precisam pertencer ao negócio
	var serviceIDs []uint
	for _, item := range req.Services {
		serviceIDs = append(serviceIDs, item.ServiceID)
	}

	var count int64
	h.db.Model(&models.Service{}).
		Where("business_id = ? AND id IN ?", businessID, serviceIDs).
		Count(&count)
	if count != int64(len(serviceIDs)) {
		httperr.BadRequest(c, "service_not_found", "Um ou mais serviços não existem.")
		return
	}

	combo := models.Combo{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}

	for _, item := range req.Services {
		combo.Services = append(combo.Services, models.ComboService{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}

	if err := h.db.Create(&combo).Error; err != nil {
		httperr.Internal(c, "failed_to_create_combo", "Erro ao criar combo.")
		return
	}

	c.JSON(http.StatusCreated, combo)
}

type UpdateComboRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Price       *float64           `json:"price,omitempty"`
	Active      *bool              `json:"active,omitempty"`
	Services    []ComboServiceItem `json:"services,omitempty"`
}

// Update edita o template. Instâncias já vendidas carregam retratos de
// nome e contadores próprios, então a edição nunca mexe nelas.
func (h *ComboHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_combo_id", "Combo inválido.")
		return
	}

	var combo models.Combo
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&combo).Error; err != nil {

		httperr.NotFound(c, "combo_not_found", "Combo não encontrado.")
		return
	}

	var req UpdateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		combo.Name = *req.Name
	}
	if req.Description != nil {
		combo.Description = *req.Description
	}
	if req.Price != nil {
		combo.Price = *req.Price
	}
	if req.Active != nil {
		combo.Active = *req.Active
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&combo).Error; err != nil {
			return err
		}

		if req.Services == nil {
			return nil
		}

		var serviceIDs []uint
		for _, item := range req.Services {
			serviceIDs = append(serviceIDs, item.ServiceID)
		}

		var count int64
		if err := tx.Model(&models.Service{}).
			Where("business_id = ? AND id IN ?", businessID, serviceIDs).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(serviceIDs)) {
			return httperr.ErrBusiness("service_not_found")
		}

		if err := tx.
			Where("combo_id = ?", combo.ID).
			Delete(&models.ComboService{}).Error; err != nil {
			return err
		}

		var toCreate []models.ComboService
		for _, item := range req.Services {
			toCreate = append(toCreate, models.ComboService{
				ComboID:   combo.ID,
				ServiceID: item.ServiceID,
				Quantity:  item.Quantity,
			})
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Um ou mais serviços não existem.")
			return
		}
		httperr.Internal(c, "failed_to_update_combo", "Erro ao salvar combo.")
		return
	}

	h.db.
		Preload("Services").
		Preload("Services.Service").
		First(&combo, combo.ID)

	c.JSON(http.StatusOK, combo)
}

func (h *ComboHandler) Delete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_combo_id", "Combo inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), businessID, id); err != nil {
		if httperr.IsBusiness(err, "combo_not_found") {
			httperr.NotFound(c, "combo_not_found", "Combo não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "combo_in_use") {
			httperr.Conflict(c, "combo_in_use", "Combo em uso por clientes; não pode ser excluído.")
			return
		}
		httperr.Internal(c, "failed_to_delete_combo", "Erro ao excluir combo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
