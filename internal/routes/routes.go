package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioAgenda/salon-scheduler/internal/audit"
	"github.com/StudioAgenda/salon-scheduler/internal/cache"
	"github.com/StudioAgenda/salon-scheduler/internal/config"
	"github.com/StudioAgenda/salon-scheduler/internal/handlers"
	infraRepo "github.com/StudioAgenda/salon-scheduler/internal/infra/repository"
	"github.com/StudioAgenda/salon-scheduler/internal/middleware"
	"github.com/StudioAgenda/salon-scheduler/internal/notifications"
	"github.com/StudioAgenda/salon-scheduler/internal/timezone"
	ucAppointment "github.com/StudioAgenda/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifier := notifications.NewDispatcher(notifications.NewLogSender())

	// sem Redis configurado a API funciona igual, só recalcula sempre
	var busyCache cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Println("redis unavailable, falling back to noop cache:", err)
		} else {
			busyCache = redisCache
		}
	}

	salonLoc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		busyCache,
		cfg.SlotStepMinutes,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		notifier,
		busyCache,
		salonLoc,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		busyCache,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createAppointmentUC,
		cfg.Timezone,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		updateStatusUC,
		cfg.Timezone,
	)

	myAppointmentsHandler := handlers.NewMyAppointmentsHandler(db)
	serviceAdminHandler := handlers.NewServiceAdminHandler(db, auditDispatcher)
	professionalAdminHandler := handlers.NewProfessionalAdminHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICA (cliente logado é opcional)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.OptionalAuth(cfg))
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/bookings", myAppointmentsHandler.List)

			// agenda do profissional
			staff := secured.Group("/me/appointments")
			staff.Use(middleware.RequireProfessional())
			{
				staff.GET("", appointmentHandler.ListByDate)
				staff.GET("/month", appointmentHandler.ListByMonth)
				staff.PATCH("/:id/status", appointmentHandler.UpdateStatus)
			}

			// catálogo e auditoria
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/services", serviceAdminHandler.List)
				admin.POST("/services", serviceAdminHandler.Create)
				admin.PATCH("/services/:id", serviceAdminHandler.Update)

				admin.GET("/professionals", professionalAdminHandler.List)
				admin.POST("/professionals", professionalAdminHandler.Create)
				admin.PATCH("/professionals/:id", professionalAdminHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
