package routes

import (
	"office-backend/internal/api/handlers"
	"office-backend/internal/api/middleware"
	"office-backend/internal/config"
	"office-backend/internal/events"
	"office-backend/internal/models"
	"office-backend/internal/repository"
	"office-backend/internal/services"
	"office-backend/pkg/email"
	"office-backend/pkg/jwt"
	"office-backend/pkg/ratelimit"
	appredis "office-backend/pkg/redis"
	"office-backend/pkg/sessions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *appredis.Client, feed *events.Manager, cfg *config.Config) {
	// Repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	resetRequestRepo := repository.NewResetRequestRepository(db)
	actionLogRepo := repository.NewActionLogRepository(db)

	// Shared infrastructure
	signer := jwt.NewSigner(cfg.JWTSecret, cfg.SessionTTL)
	sessionStore := sessions.NewStore(redisClient.GetClient(), cfg.SessionTTL)
	mailer := email.NewService(cfg.SMTP, cfg.AppURL)
	limiter := ratelimit.NewLimiter(redisClient.GetClient(), ratelimit.DefaultAuthLimit())

	// Services
	auditService := services.NewAuditService(actionLogRepo)
	authService := services.NewAuthService(employeeRepo, redisClient.GetClient(), signer, sessionStore, mailer, auditService)
	resetService := services.NewResetService(employeeRepo, resetRequestRepo, redisClient.GetClient(), mailer, auditService)
	employeeService := services.NewEmployeeService(employeeRepo, mailer, auditService)
	projectService := services.NewProjectService(projectRepo, employeeRepo, auditService)
	roomService := services.NewRoomService(roomRepo, auditService)
	resourceService := services.NewResourceService(resourceRepo, employeeRepo, auditService)
	reservationService := services.NewReservationService(reservationRepo, roomRepo, projectRepo, auditService, feed)
	incidentService := services.NewIncidentService(incidentRepo, resourceRepo, auditService, feed)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, resetService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	projectHandler := handlers.NewProjectHandler(projectService)
	roomHandler := handlers.NewRoomHandler(roomService, reservationService)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	incidentHandler := handlers.NewIncidentHandler(incidentService)
	resetRequestHandler := handlers.NewResetRequestHandler(resetService)
	actionLogHandler := handlers.NewActionLogHandler(auditService)
	eventsHandler := handlers.NewEventsHandler(feed)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	session := middleware.Session(signer, sessionStore)

	api := router.Group("/api/v1")

	api.GET("/health", healthHandler.Check)

	// Public routes. Everything under /auth shares the login rate limit.
	auth := api.Group("/auth")
	auth.Use(middleware.AuthRateLimit(limiter))
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-2fa", authHandler.Verify2FA)
		auth.POST("/update-password", authHandler.UpdatePassword)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		// Filing a ticket is public: the requester is locked out.
		auth.POST("/reset-requests", resetRequestHandler.Queue)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", session, authHandler.Profile)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(session)
	{
		employees := protected.Group("/employees")
		employees.Use(middleware.RequirePermission(models.PermEmployeesManage))
		{
			employees.GET("", employeeHandler.GetAll)
			employees.POST("", employeeHandler.Create)
			employees.GET("/:id", employeeHandler.GetByID)
			employees.PUT("/:id", employeeHandler.Update)
			employees.DELETE("/:id", employeeHandler.Delete)
		}

		projects := protected.Group("/projects")
		{
			read := middleware.RequirePermission(models.PermProjectsRead)
			manage := middleware.RequirePermission(models.PermProjectsManage)
			projects.GET("", read, projectHandler.GetAll)
			projects.GET("/:id", read, projectHandler.GetByID)
			projects.GET("/:id/team", read, projectHandler.Team)
			projects.POST("", manage, projectHandler.Create)
			projects.PUT("/:id", manage, projectHandler.Update)
			projects.DELETE("/:id", manage, projectHandler.Delete)
			projects.POST("/:id/team", manage, projectHandler.AddMember)
			projects.DELETE("/:id/team/:employeeId", manage, projectHandler.RemoveMember)
		}

		rooms := protected.Group("/rooms")
		{
			manage := middleware.RequirePermission(models.PermRoomsManage)
			rooms.GET("", roomHandler.GetAll)
			rooms.GET("/:id", roomHandler.GetByID)
			rooms.GET("/:id/reservations", roomHandler.Reservations)
			rooms.POST("", manage, roomHandler.Create)
			rooms.PUT("/:id", manage, roomHandler.Update)
			rooms.DELETE("/:id", manage, roomHandler.Delete)
		}

		resources := protected.Group("/resources")
		{
			manage := middleware.RequirePermission(models.PermResourcesManage)
			resources.GET("", resourceHandler.GetAll)
			resources.GET("/:id", resourceHandler.GetByID)
			resources.POST("", manage, resourceHandler.Create)
			resources.PUT("/:id", manage, resourceHandler.Update)
			resources.DELETE("/:id", manage, resourceHandler.Delete)
		}

		reservations := protected.Group("/reservations")
		{
			create := middleware.RequirePermission(models.PermReservationsCreate)
			manage := middleware.RequirePermission(models.PermReservationsManage)
			reservations.GET("", reservationHandler.GetAll)
			reservations.GET("/mine", reservationHandler.Mine)
			reservations.GET("/:id", reservationHandler.GetByID)
			reservations.POST("", create, reservationHandler.Create)
			reservations.PUT("/:id", manage, reservationHandler.Update)
			reservations.DELETE("/:id", manage, reservationHandler.Cancel)
		}

		incidents := protected.Group("/incidents")
		{
			report := middleware.RequirePermission(models.PermIncidentsReport)
			resolve := middleware.RequirePermission(models.PermIncidentsResolve)
			incidents.GET("", incidentHandler.GetAll)
			incidents.GET("/:id", incidentHandler.GetByID)
			incidents.POST("", report, incidentHandler.Report)
			incidents.PATCH("/:id/resolve", resolve, incidentHandler.Resolve)
		}

		resets := protected.Group("/reset-requests")
		resets.Use(middleware.RequirePermission(models.PermResetsManage))
		{
			resets.GET("", resetRequestHandler.Pending)
			resets.POST("/:id/approve", resetRequestHandler.Approve)
			resets.POST("/:id/reject", resetRequestHandler.Reject)
		}

		protected.POST("/employees/:id/reset-password",
			middleware.RequirePermission(models.PermResetsManage), resetRequestHandler.AdminReset)

		protected.GET("/logs",
			middleware.RequirePermission(models.PermLogsRead), actionLogHandler.GetAll)

		protected.GET("/events/ws",
			middleware.RequirePermission(models.PermEventsSubscribe), eventsHandler.Subscribe)
	}
}
