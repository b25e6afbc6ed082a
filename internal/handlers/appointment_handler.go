package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	ucAppointment "github.com/pickdateai/scheduler-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	completeUC     *ucAppointment.CompleteAppointment
	cancelUC       *ucAppointment.CancelAppointment
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
	availabilityUC *ucAppointment.GetAvailability
	repo           domain.Repository
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	availabilityUC *ucAppointment.GetAvailability,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		availabilityUC: availabilityUC,
		repo:           repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CollaboratorID uint   `json:"collaborator_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BusinessID:     businessID,
		CollaboratorID: req.CollaboratorID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		// encaixes de última hora são permitidos pelo painel
		EnforceMinAdvance: false,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) writeBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	switch code {
	case "time_conflict":
		httperr.Conflict(c, code, "Horário já ocupado.")
	case "outside_working_hours":
		httperr.BadRequest(c, code, "Fora do horário de atendimento.")
	case "too_soon":
		httperr.BadRequest(c, code, "Horário muito próximo; escolha outro.")
	case "service_not_found", "collaborator_not_found", "calendar_not_found":
		httperr.BadRequest(c, code, "Cadastro não encontrado.")
	default:
		httperr.BadRequest(c, code, "Não foi possível agendar.")
	}
}

// ======================================================
// AVAILABILITY (painel)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	collaboratorID, err1 := strconv.ParseUint(c.Query("collaborator_id"), 10, 64)
	serviceID, err2 := strconv.ParseUint(c.Query("service_id"), 10, 64)
	dateStr := c.Query("date")
	if err1 != nil || err2 != nil || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Colaborador, serviço e data são obrigatórios.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID:     businessID,
		CollaboratorID: uint(collaboratorID),
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

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	collaboratorID, err := strconv.ParseUint(c.Query("collaborator_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_collaborator_id", "Colaborador inválido.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	dateStr := c.DefaultQuery("date", nowInBusiness(biz).Format("2006-01-02"))
	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), uint(collaboratorID), businessID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	collaboratorID, err := strconv.ParseUint(c.Query("collaborator_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_collaborator_id", "Colaborador inválido.")
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Ano/mês inválidos.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), uint(collaboratorID), businessID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), businessID, id)
	if err != nil {
		h.writeStateChangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), businessID, id)
	if err != nil {
		h.writeStateChangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) writeStateChangeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.Conflict(c, "invalid_state", "Agendamento não está mais agendado.")
	default:
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
	}
}
