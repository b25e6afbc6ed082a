package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/cache"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	"github.com/pickdateai/scheduler-api/internal/models"
	"github.com/pickdateai/scheduler-api/internal/validators"
)

type WorkHoursHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewWorkHoursHandler(db *gorm.DB, availability *cache.AvailabilityCache) *WorkHoursHandler {
	return &WorkHoursHandler{db: db, cache: availability}
}

type WorkDayConfig struct {
	Day        string `json:"day" binding:"required"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkHoursUpdateRequest struct {
	Days []WorkDayConfig `json:"days" binding:"required"`
}

func (h *WorkHoursHandler) collaboratorFromPath(c *gin.Context) (*models.Collaborator, bool) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_collaborator_id", "Colaborador inválido.")
		return nil, false
	}

	var collaborator models.Collaborator
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&collaborator).Error; err != nil {

		httperr.NotFound(c, "collaborator_not_found", "Colaborador não encontrado.")
		return nil, false
	}

	return &collaborator, true
}

func (h *WorkHoursHandler) Get(c *gin.Context) {
	collaborator, ok := h.collaboratorFromPath(c)
	if !ok {
		return
	}

	var hours []models.WorkHour
	if err := h.db.
		Where("collaborator_id = ?", collaborator.ID).
		Order("id ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_work_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update substitui o expediente semanal inteiro do colaborador.
func (h *WorkHoursHandler) Update(c *gin.Context) {
	collaborator, ok := h.collaboratorFromPath(c)
	if !ok {
		return
	}

	var req WorkHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, d := range req.Days {
		if !validators.IsWeekdayName(d.Day) {
			httperr.BadRequest(c, "invalid_day", "Dia da semana inválido: "+d.Day)
			return
		}
		if !validators.IsClock(d.StartTime) || !validators.IsClock(d.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Horário inválido em "+d.Day)
			return
		}
		hasBreak := d.BreakStart != "" || d.BreakEnd != ""
		if hasBreak && (!validators.IsClock(d.BreakStart) || !validators.IsClock(d.BreakEnd)) {
			httperr.BadRequest(c, "invalid_break", "Pausa inválida em "+d.Day)
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("collaborator_id = ?", collaborator.ID).
			Delete(&models.WorkHour{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkHour
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkHour{
				CollaboratorID: collaborator.ID,
				Day:            d.Day,
				StartTime:      d.StartTime,
				EndTime:        d.EndTime,
				BreakStart:     d.BreakStart,
				BreakEnd:       d.BreakEnd,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_work_hours", "Erro ao salvar expediente.")
		return
	}

	// expediente novo invalida qualquer grade em cache
	h.cache.InvalidateAllDates(context.Background(), collaborator.ID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
