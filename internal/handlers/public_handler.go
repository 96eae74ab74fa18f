package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/StudioAgenda/salon-scheduler/internal/domain/appointment"
	"github.com/StudioAgenda/salon-scheduler/internal/httperr"
	"github.com/StudioAgenda/salon-scheduler/internal/httpresp"
	"github.com/StudioAgenda/salon-scheduler/internal/middleware"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
	"github.com/StudioAgenda/salon-scheduler/internal/timezone"
	ucAppointment "github.com/StudioAgenda/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
	tz             string
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		tz:             tz,
	}
}

// ======================================================
// DTOs
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID      uint   `json:"service_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	Notes          string `json:"notes"`
}

// ======================================================
// SERVICES / PROFESSIONALS
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	// só profissionais ativos aparecem para reserva
	var pros []models.Professional
	if err := h.db.
		Where("is_active = true").
		Order("id ASC").
		Find(&pros).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, pros)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	proIDStr := c.Query("professional")
	serviceIDStr := c.Query("service")

	if dateStr == "" || proIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviço são obrigatórios.")
		return
	}

	proID, err := strconv.ParseUint(proIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDateInSalon(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ProfessionalID: uint(proID),
			ServiceID:      uint(serviceID),
			Date:           date,
		},
		timezone.NowIn(h.tz),
	)
	if err != nil {
		mapAvailabilityErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE APPOINTMENT
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// cliente logado é opcional (OptionalAuth)
	var userID *uint
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			userID = &id
		}
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ServiceID:      req.ServiceID,
			ProfessionalID: req.ProfessionalID,
			UserID:         userID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
		},
		timezone.NowIn(h.tz),
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapAvailabilityErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.BadRequest(c, "professional_not_found", "Profissional inválido.")
	case httperr.IsBusiness(err, "invalid_service_duration"),
		httperr.IsBusiness(err, "invalid_working_hours"):
		httperr.Internal(c, "schedule_misconfigured", "Erro ao calcular horários.")
	default:
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
	}
}

func mapCreateErrors(c *gin.Context, err error) {
	if ce, ok := domain.AsConflict(err); ok {
		httperr.BadRequest(c, "time_conflict",
			"Este horário se sobrepõe a outra reserva ("+ce.Window()+").")
		return
	}

	switch {
	case httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "past_booking"):
		httperr.BadRequest(c, "past_booking", "Não é possível reservar no passado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.BadRequest(c, "professional_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")
	case httperr.IsBusiness(err, "invalid_service_duration"),
		httperr.IsBusiness(err, "invalid_working_hours"):
		httperr.Internal(c, "schedule_misconfigured", "Erro ao criar reserva.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar reserva.")
	}
}
