package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	"github.com/pickdateai/scheduler-api/internal/models"
)

type CollaboratorHandler struct {
	db *gorm.DB
}

func NewCollaboratorHandler(db *gorm.DB) *CollaboratorHandler {
	return &CollaboratorHandler{db: db}
}

// --------- Requests ---------

type CreateCollaboratorRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Title string `json:"title"`
}

type UpdateCollaboratorRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Title  *string `json:"title,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *CollaboratorHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var collaborators []models.Collaborator
	if err := h.db.
		Preload("WorkHours").
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&collaborators).Error; err != nil {

		httperr.Internal(c, "failed_to_list_collaborators", "Erro ao listar colaboradores.")
		return
	}

	c.JSON(http.StatusOK, collaborators)
}

func (h *CollaboratorHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	collaborator := models.Collaborator{
		BusinessID: businessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Title:      req.Title,
		Active:     true,
	}

	// Colaborador e agenda padrão nascem juntos.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&collaborator).Error; err != nil {
			return err
		}

		calendar := models.Calendar{
			BusinessID:     businessID,
			CollaboratorID: collaborator.ID,
			Name:           "Agenda principal",
			Default:        true,
		}
		return tx.Create(&calendar).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_collaborator", "Erro ao criar colaborador.")
		return
	}

	c.JSON(http.StatusCreated, collaborator)
}

func (h *CollaboratorHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var collaborator models.Collaborator
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&collaborator).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "collaborator_not_found", "Colaborador não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_collaborator", "Erro ao buscar colaborador.")
		return
	}

	var req UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		collaborator.Name = *req.Name
	}
	if req.Phone != nil {
		collaborator.Phone = *req.Phone
	}
	if req.Title != nil {
		collaborator.Title = *req.Title
	}
	if req.Active != nil {
		collaborator.Active = *req.Active
	}

	if err := h.db.Save(&collaborator).Error; err != nil {
		httperr.Internal(c, "failed_to_update_collaborator", "Erro ao salvar colaborador.")
		return
	}

	c.JSON(http.StatusOK, collaborator)
}
