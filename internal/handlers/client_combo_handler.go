package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/pickdateai/scheduler-api/internal/domain/combo"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	ucCombo "github.com/pickdateai/scheduler-api/internal/usecase/combo"
)

type ClientComboHandler struct {
	repo      domain.Repository
	assignUC  *ucCombo.AssignCombo
	consumeUC *ucCombo.ConsumeSession
	detachUC  *ucCombo.DetachCombo
}

func NewClientComboHandler(
	repo domain.Repository,
	assignUC *ucCombo.AssignCombo,
	consumeUC *ucCombo.ConsumeSession,
	detachUC *ucCombo.DetachCombo,
) *ClientComboHandler {
	return &ClientComboHandler{
		repo:      repo,
		assignUC:  assignUC,
		consumeUC: consumeUC,
		detachUC:  detachUC,
	}
}

// --------- Requests ---------

type AssignComboRequest struct {
	ComboID    uint    `json:"combo_id" binding:"required"`
	ClientID   uint    `json:"client_id" binding:"required"`
	ExpiresAt  string  `json:"expires_at"` // YYYY-MM-DD, opcional
	AmountPaid float64 `json:"amount_paid"`
}

// --------- Helpers ---------

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// --------- Handlers ---------

func (h *ClientComboHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var clientID uint
	if raw := c.Query("client_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Cliente inválido.")
			return
		}
		clientID = uint(v)
	}

	combos, err := h.repo.ListClientCombos(c.Request.Context(), businessID, clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_client_combos", "Erro ao listar combos de clientes.")
		return
	}

	c.JSON(http.StatusOK, combos)
}

func (h *ClientComboHandler) Assign(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req AssignComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_expires_at", "Data de validade inválida.")
			return
		}
		expiresAt = &t
	}

	cc, err := h.assignUC.Execute(c.Request.Context(), ucCombo.AssignComboInput{
		BusinessID: businessID,
		ComboID:    req.ComboID,
		ClientID:   req.ClientID,
		ExpiresAt:  expiresAt,
		AmountPaid: req.AmountPaid,
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível atribuir o combo.")
			return
		}
		httperr.Internal(c, "failed_to_assign_combo", "Erro ao atribuir combo.")
		return
	}

	c.JSON(http.StatusCreated, cc)
}

func (h *ClientComboHandler) ConsumeSession(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	sessionID, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_session_id", "Sessão inválida.")
		return
	}

	cc, err := h.consumeUC.Execute(c.Request.Context(), businessID, sessionID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "session_not_found"):
			httperr.NotFound(c, "session_not_found", "Sessão não encontrada.")
		case httperr.IsBusiness(err, "no_sessions_left"):
			httperr.Conflict(c, "no_sessions_left", "Todas as sessões desse serviço já foram usadas.")
		case httperr.IsBusiness(err, "combo_expired"):
			httperr.Conflict(c, "combo_expired", "Combo vencido.")
		case httperr.IsBusiness(err, "combo_not_consumable"):
			httperr.Conflict(c, "combo_not_consumable", "Combo não permite mais consumo.")
		default:
			httperr.Internal(c, "failed_to_consume_session", "Erro ao consumir sessão.")
		}
		return
	}

	c.JSON(http.StatusOK, cc)
}

func (h *ClientComboHandler) Detach(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	clientComboID, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_client_combo_id", "Combo de cliente inválido.")
		return
	}

	cc, err := h.detachUC.Execute(c.Request.Context(), businessID, clientComboID)
	if err != nil {
		if httperr.IsBusiness(err, "client_combo_not_found") {
			httperr.NotFound(c, "client_combo_not_found", "Combo de cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_detach_combo", "Erro ao desvincular combo.")
		return
	}

	c.JSON(http.StatusOK, cc)
}
