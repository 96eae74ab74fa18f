package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/middleware"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

// mesma forma que o modelo persiste (HH:MM)
var hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ProfessionalAdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProfessionalAdminHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ProfessionalAdminHandler {
	return &ProfessionalAdminHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	StartWork string `json:"start_work"`
	EndWork   string `json:"end_work"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	StartWork *string `json:"start_work,omitempty"`
	EndWork   *string `json:"end_work,omitempty"`
}

func validWorkWindow(start, end string) bool {
	if !hhmmRegex.MatchString(start) || !hhmmRegex.MatchString(end) {
		return false
	}
	return start < end
}

// --------- Handlers ---------

func (h *ProfessionalAdminHandler) List(c *gin.Context) {
	var pros []models.Professional
	if err := h.db.
		Order("id ASC").
		Find(&pros).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_professionals"})
		return
	}

	c.JSON(http.StatusOK, pros)
}

func (h *ProfessionalAdminHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	pro := models.Professional{
		Name:     req.Name,
		IsActive: true,
	}

	if req.StartWork != "" || req.EndWork != "" {
		if !validWorkWindow(req.StartWork, req.EndWork) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_working_hours"})
			return
		}
		pro.StartWork = req.StartWork
		pro.EndWork = req.EndWork
	}

	if err := h.db.Create(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_professional"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "professional_created",
		Entity:   "professional",
		EntityID: &pro.ID,
	})

	c.JSON(http.StatusCreated, pro)
}

// Update cobre também o expediente. Reservas existentes fora da nova
// janela continuam válidas: a janela só restringe reservas futuras.
func (h *ProfessionalAdminHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.First(&pro, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_professional"})
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.IsActive != nil {
		pro.IsActive = *req.IsActive
	}

	start := pro.StartWork
	end := pro.EndWork
	if req.StartWork != nil {
		start = *req.StartWork
	}
	if req.EndWork != nil {
		end = *req.EndWork
	}
	if req.StartWork != nil || req.EndWork != nil {
		if !validWorkWindow(start, end) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_working_hours"})
			return
		}
		pro.StartWork = start
		pro.EndWork = end
	}

	if err := h.db.Save(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_professional"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "professional_updated",
		Entity:   "professional",
		EntityID: &pro.ID,
	})

	c.JSON(http.StatusOK, pro)
}
