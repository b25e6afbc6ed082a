package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
	ucAppointment "github.com/pickdateai/scheduler-api/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CollaboratorID uint   `json:"collaborator_id"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) businessFromSlug(c *gin.Context) (*models.Business, bool) {
	slug := c.Param("slug")

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
		return nil, false
	}
	return &biz, true
}

// resolveCollaborator devolve o colaborador pedido ou o primeiro ativo.
func (h *PublicHandler) resolveCollaborator(biz *models.Business, id uint) (*models.Collaborator, error) {
	var collaborator models.Collaborator

	q := h.db.Where("business_id = ? AND active = ?", biz.ID, true)
	if id != 0 {
		q = q.Where("id = ?", id)
	}

	if err := q.Order("id ASC").First(&collaborator).Error; err != nil {
		return nil, err
	}
	return &collaborator, nil
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.businessFromSlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("business_id = ? AND active = true", biz.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	var collaborators []models.Collaborator
	h.db.
		Where("business_id = ? AND active = ?", biz.ID, true).
		Order("id ASC").
		Find(&collaborators)

	c.JSON(http.StatusOK, gin.H{
		"business":      biz,
		"services":      services,
		"collaborators": collaborators,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	biz, ok := h.businessFromSlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var collaboratorID uint
	if raw := c.Query("collaborator_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_collaborator_id", "Colaborador inválido.")
			return
		}
		collaboratorID = uint(v)
	}

	collaborator, err := h.resolveCollaborator(biz, collaboratorID)
	if err != nil {
		httperr.NotFound(c, "collaborator_not_found", "Nenhum colaborador disponível.")
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID:     biz.ID,
		CollaboratorID: collaborator.ID,
		ServiceID:      uint(serviceID),
		Date:           date,
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível calcular a disponibilidade.")
			return
		}
		httperr.Internal(c, "failed_to_get_availability", "Erro ao calcular disponibilidade.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collaborator_id": collaborator.ID,
		"slots":           slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	biz, ok := h.businessFromSlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	collaborator, err := h.resolveCollaborator(biz, req.CollaboratorID)
	if err != nil {
		httperr.NotFound(c, "collaborator_not_found", "Nenhum colaborador disponível.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BusinessID:     biz.ID,
		CollaboratorID: collaborator.ID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		// o público respeita a antecedência mínima configurada
		EnforceMinAdvance: true,
	})
	if err != nil {
		code, ok := httperr.BusinessCode(err)
		if !ok {
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
			return
		}
		if code == "time_conflict" {
			httperr.Conflict(c, code, "Horário já ocupado.")
			return
		}
		httperr.BadRequest(c, code, "Não foi possível agendar.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":  ap.Reference,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}
