package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	"github.com/pickdateai/scheduler-api/internal/models"
	"github.com/pickdateai/scheduler-api/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessConfigRequest struct {
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	Timezone          *string `json:"timezone"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Erro ao buscar dados do negócio.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Erro ao buscar dados do negócio.")
		return
	}

	var req UpdateBusinessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		biz.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		biz.Timezone = *req.Timezone
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Erro ao salvar as configurações do negócio.")
		return
	}

	c.JSON(http.StatusOK, biz)
}
