package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/config"
	"milmed-app-server/internal/handlers"
	"milmed-app-server/internal/middleware"
	"milmed-app-server/internal/models"
	"milmed-app-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	accountRepo, err := store.NewAccountRepository(db, log, cfg.DoctorIdentityPattern, cfg.PersonIdentityPattern)
	if err != nil {
		return err
	}
	ameRepo := store.NewAMERepository(db, log)
	lmcRepo := store.NewLowMedicalRepository(db, log)
	prescriptionRepo := store.NewPrescriptionRepository(db, log)

	authHandler := handlers.NewAuthHandler(accountRepo, cfg)
	accountHandler := handlers.NewAccountHandler(accountRepo)
	ameHandler := handlers.NewAMEHandler(ameRepo)
	lmcHandler := handlers.NewLMCHandler(lmcRepo)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionRepo, accountRepo)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutes := private.Group("/auth")
		{
			authRoutes.GET("/profile", authHandler.GetProfile)
			// Registration is admin-gated: personnel never self-register.
			authRoutes.POST("/register", middleware.RoleAuthMiddleware(models.RoleAdmin), authHandler.Register)
		}

		// Account management (admin only)
		accountRoutes := private.Group("/accounts")
		accountRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			accountRoutes.GET("", accountHandler.GetAccounts)
			accountRoutes.GET("/lookup", accountHandler.GetAccountByIdentity)
			accountRoutes.GET("/count", accountHandler.GetAccountCount)
			accountRoutes.PUT("/:id", accountHandler.UpdateAccount)
			accountRoutes.DELETE("/:id", accountHandler.DeleteAccount)
		}

		// AME record routes. All roles read; doctors and admins mutate;
		// destructive bulk operations are admin only.
		ameRoutes := private.Group("/ame-records")
		{
			ameRoutes.GET("", ameHandler.GetAMERecords)
			ameRoutes.GET("/search", ameHandler.SearchAMERecords)
			ameRoutes.GET("/stats", ameHandler.GetAMEStatistics)

			ameWrite := ameRoutes.Group("")
			ameWrite.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
			{
				ameWrite.POST("", ameHandler.CreateAMERecord)
				ameWrite.POST("/bulk", ameHandler.BulkCreateAMERecords)
				ameWrite.PATCH("/:id/remarks", ameHandler.UpdateAMERemarks)
				ameWrite.PUT("/:id", ameHandler.UpdateAMERecord)
			}

			ameAdmin := ameRoutes.Group("")
			ameAdmin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				ameAdmin.POST("/delete", ameHandler.DeleteAMERecords)
				ameAdmin.DELETE("", ameHandler.DeleteAllAMERecords)
			}
		}

		// Low medical category record routes, same access shape as AME.
		lmcRoutes := private.Group("/lmc-records")
		{
			lmcRoutes.GET("", lmcHandler.GetLMCRecords)
			lmcRoutes.GET("/search", lmcHandler.SearchLMCRecords)
			lmcRoutes.GET("/stats", lmcHandler.GetLMCStatistics)
			lmcRoutes.GET("/allotment-dates", lmcHandler.ParseAllotmentDates)

			lmcWrite := lmcRoutes.Group("")
			lmcWrite.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
			{
				lmcWrite.POST("", lmcHandler.CreateLMCRecord)
				lmcWrite.POST("/bulk", lmcHandler.BulkCreateLMCRecords)
				lmcWrite.PATCH("/:id/remarks", lmcHandler.UpdateLMCRemarks)
				lmcWrite.PUT("/:id", lmcHandler.UpdateLMCRecord)
			}

			lmcAdmin := lmcRoutes.Group("")
			lmcAdmin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				lmcAdmin.POST("/delete", lmcHandler.DeleteLMCRecords)
				lmcAdmin.DELETE("", lmcHandler.DeleteAllLMCRecords)
			}
		}

		// Prescription routes. Only doctors issue; a patient's history is
		// readable by any authenticated account.
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("/patient/:patientId/history", prescriptionHandler.GetPatientHistory)

			prescriptionRead := prescriptionRoutes.Group("")
			prescriptionRead.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
			{
				prescriptionRead.GET("", prescriptionHandler.GetPrescriptions)
				prescriptionRead.GET("/search", prescriptionHandler.SearchPrescriptions)
				prescriptionRead.GET("/:id", prescriptionHandler.GetPrescriptionByID)
				prescriptionRead.PATCH("/:id/status", prescriptionHandler.UpdatePrescriptionStatus)
				prescriptionRead.DELETE("/:id", prescriptionHandler.DeletePrescription)
			}
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	return nil
}
