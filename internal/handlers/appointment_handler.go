package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/middleware"
	"github.com/StudioAgenda/salon-scheduler/internal/timezone"
	ucAppointment "github.com/StudioAgenda/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler atende as rotas da equipe. Toda rota aqui passa
// por RequireProfessional, então o ProfessionalID do contexto é confiável.
type AppointmentHandler struct {
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listByMonthUC *ucAppointment.ListAppointmentsByMonth
	updateUC      *ucAppointment.UpdateStatus
	tz            string
}

func NewAppointmentHandler(
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	updateUC *ucAppointment.UpdateStatus,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		updateUC:      updateUC,
		tz:            tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	proID := c.MustGet(middleware.ContextProfessionalID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDateInSalon(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	aps, err := h.listByDateUC.Execute(c.Request.Context(), proID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agenda.")
		return
	}

	c.JSON(200, gin.H{
		"date":         dateStr,
		"appointments": aps,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	proID := c.MustGet(middleware.ContextProfessionalID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	aps, err := h.listByMonthUC.Execute(
		c.Request.Context(),
		proID,
		year,
		month,
		timezone.Location(h.tz),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agenda.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": aps,
	})
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	proID := c.MustGet(middleware.ContextProfessionalID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(
		c.Request.Context(),
		proID,
		userID,
		uint(id),
		req.Status,
		timezone.NowIn(h.tz),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_status_value"):
			httperr.BadRequest(c, "invalid_status_value", "Status inválido.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Transição de status não permitida.")
		default:
			httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar reserva.")
		}
		return
	}

	c.JSON(200, ap)
}
