package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/audit"
	"github.com/marcou-app/marcou/internal/config"
	"github.com/marcou-app/marcou/internal/domain/role"
	"github.com/marcou-app/marcou/internal/handlers"
	"github.com/marcou-app/marcou/internal/infra/lock"
	"github.com/marcou-app/marcou/internal/infra/media"
	infraRepo "github.com/marcou-app/marcou/internal/infra/repository"
	"github.com/marcou-app/marcou/internal/middleware"
	ucAppointment "github.com/marcou-app/marcou/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker lock.StaffLocker,
	uploader *media.Uploader,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db, locker)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	clientHistoryUC := ucAppointment.NewListClientHistory(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	clientHandler := handlers.NewClientHandler(db, clientHistoryUC)
	operatingHoursHandler := handlers.NewOperatingHoursHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	mediaHandler := handlers.NewMediaHandler(db, uploader)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createAppointmentUC)
	clientAreaHandler := handlers.NewClientAreaHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (por slug)
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(middleware.SubscriptionGate(db))
		{
			publicAPI.GET("", publicHandler.GetCompanyPage)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/staff", publicHandler.ListStaff)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
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
			secured.POST("/me/avatar", mediaHandler.UploadAvatar)

			// ------------------------------
			// ÁREA DO CLIENTE LOGADO
			// ------------------------------
			clientArea := secured.Group("/client")
			clientArea.Use(middleware.RequireRole(role.Client))
			{
				clientArea.GET("/appointments", clientAreaHandler.ListMyAppointments)
			}

			// ------------------------------
			// GESTÃO DA EMPRESA (owner/staff)
			// ------------------------------
			management := secured.Group("/me")
			management.Use(middleware.RequireRole(role.Owner, role.Staff))
			{
				management.GET("/company", companyHandler.GetMeCompany)

				management.GET("/services", serviceHandler.List)
				management.GET("/staff", staffHandler.List)
				management.GET("/operating-hours", operatingHoursHandler.Get)

				management.GET("/clients", clientHandler.List)
				management.POST("/clients", clientHandler.Create)
				management.GET("/clients/:id/appointments", clientHandler.History)

				management.POST("/appointments", appointmentHandler.Create)
				management.GET("/appointments", appointmentHandler.ListByDate)
				management.GET("/appointments/month", appointmentHandler.ListByMonth)
				management.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				management.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			}

			// ------------------------------
			// SÓ OWNER
			// ------------------------------
			ownerOnly := secured.Group("/me")
			ownerOnly.Use(middleware.RequireRole(role.Owner))
			{
				ownerOnly.PATCH("/company", companyHandler.UpdateMeCompany)
				ownerOnly.POST("/company/logo", mediaHandler.UploadCompanyLogo)

				ownerOnly.POST("/services", serviceHandler.Create)
				ownerOnly.PATCH("/services/:id", serviceHandler.Update)

				ownerOnly.POST("/staff", staffHandler.Create)
				ownerOnly.PATCH("/staff/:id", staffHandler.Update)

				ownerOnly.PUT("/operating-hours", operatingHoursHandler.Update)

				ownerOnly.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// SUPERADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(role.Superadmin))
			{
				admin.GET("/companies", adminHandler.ListCompanies)
				admin.PATCH("/companies/:id", adminHandler.UpdateCompany)
			}
		}
	}
}
