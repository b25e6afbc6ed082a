package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/audit"
	"github.com/pickdateai/scheduler-api/internal/cache"
	"github.com/pickdateai/scheduler-api/internal/config"
	"github.com/pickdateai/scheduler-api/internal/handlers"
	infraRepo "github.com/pickdateai/scheduler-api/internal/infra/repository"
	"github.com/pickdateai/scheduler-api/internal/middleware"
	ucAppointment "github.com/pickdateai/scheduler-api/internal/usecase/appointment"
	ucCombo "github.com/pickdateai/scheduler-api/internal/usecase/combo"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	availability *cache.AvailabilityCache,
	log *logrus.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	comboRepo := infraRepo.NewComboGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		availability,
		auditDispatcher,
		log,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		availability,
		auditDispatcher,
		log,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		availability,
		auditDispatcher,
		log,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		availability,
		log,
	)

	// ======================================================
	// USE CASES — COMBOS
	// ======================================================
	assignComboUC := ucCombo.NewAssignCombo(comboRepo, auditDispatcher, log)
	consumeSessionUC := ucCombo.NewConsumeSession(comboRepo, auditDispatcher, log)
	detachComboUC := ucCombo.NewDetachCombo(comboRepo, auditDispatcher, log)
	deleteComboUC := ucCombo.NewDeleteCombo(comboRepo, auditDispatcher, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)

	collaboratorHandler := handlers.NewCollaboratorHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workHoursHandler := handlers.NewWorkHoursHandler(db, availability)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		getAvailabilityUC,
		appointmentRepo,
	)

	comboHandler := handlers.NewComboHandler(db, deleteComboUC)
	clientComboHandler := handlers.NewClientComboHandler(
		comboRepo,
		assignComboUC,
		consumeSessionUC,
		detachComboUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createAppointmentUC, getAvailabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (por slug)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/collaborators", collaboratorHandler.List)
			secured.POST("/me/collaborators", collaboratorHandler.Create)
			secured.PATCH("/me/collaborators/:id", collaboratorHandler.Update)

			secured.GET("/me/collaborators/:id/work-hours", workHoursHandler.Get)
			secured.PUT("/me/collaborators/:id/work-hours", workHoursHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// COMBOS
			// ------------------------------
			secured.GET("/me/combos", comboHandler.List)
			secured.POST("/me/combos", comboHandler.Create)
			secured.PATCH("/me/combos/:id", comboHandler.Update)
			secured.DELETE("/me/combos/:id", comboHandler.Delete)

			secured.GET("/me/client-combos", clientComboHandler.List)
			secured.POST("/me/client-combos", clientComboHandler.Assign)
			secured.POST("/me/client-combos/sessions/:id/consume", clientComboHandler.ConsumeSession)
			secured.PATCH("/me/client-combos/:id/detach", clientComboHandler.Detach)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
