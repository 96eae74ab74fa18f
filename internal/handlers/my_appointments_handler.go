package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioAgenda/salon-scheduler/internal/httpresp"
	"github.com/StudioAgenda/salon-scheduler/internal/middleware"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

// MyAppointmentsHandler lista as reservas do próprio cliente logado.
// Reservas anônimas (sem user_id) não aparecem aqui.
type MyAppointmentsHandler struct {
	db *gorm.DB
}

func NewMyAppointmentsHandler(db *gorm.DB) *MyAppointmentsHandler {
	return &MyAppointmentsHandler{db: db}
}

func (h *MyAppointmentsHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	q := h.db.Where("user_id = ?", userID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var aps []models.Appointment
	if err := q.
		Preload("Service").
		Preload("Professional").
		Order("start_time DESC").
		Find(&aps).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_appointments",
		})
		return
	}

	httpresp.List(c, aps)
}
