package router

import (
	"os"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/handlers"
	"github.com/converseiq/converseiq-backend/internal/middleware"
	"github.com/converseiq/converseiq-backend/internal/services"
	"github.com/converseiq/converseiq-backend/internal/services/api_key"
	"github.com/converseiq/converseiq-backend/internal/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with the dashboard API routes
func SetupRouter(db *gorm.DB, rabbitMQService *services.RabbitMQService, sseHub *services.SSEHub) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create services
	roleService := services.NewRoleService(repository.NewRoleRepository(db), repository.NewUserRepository(db))
	authService := auth.NewAuthService(db, roleService)
	apiKeyService := api_key.NewService(db)

	activityService := services.NewActivityService(repository.NewActivityLogRepository(db), sseHub, rabbitMQService)

	// Create middleware with services
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(db)

	exportsDir := os.Getenv("EXPORTS_DIR")
	if exportsDir == "" {
		exportsDir = "exports"
	}

	// Create handlers with services
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService, db)
	apiKeyHandler := handlers.NewAPIKeyHandler(db)
	goalHandler := handlers.NewGoalHandler(db, activityService)
	campaignHandler := handlers.NewCampaignHandler(db, activityService)
	conversationHandler := handlers.NewConversationHandler(db)
	teamHandler := handlers.NewTeamHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(db, exportsDir)
	activityHandler := handlers.NewActivityHandler(activityService, sseHub)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
		}

		// Ingest routes (API key auth, used by the conversation pipeline)
		ingest := api.Group("/ingest")
		ingest.Use(middleware.IngestKeyAuth(apiKeyService))
		{
			ingest.POST("/conversations", conversationHandler.IngestConversation)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			// Auth protected routes
			authProtected := protected.Group("/auth")
			{
				authProtected.POST("/logout", authHandler.Logout)
				authProtected.GET("/profile", authHandler.GetProfile)
				authProtected.POST("/change-password", authHandler.ChangePassword)
			}

			// Goal routes
			goals := protected.Group("/goals")
			{
				goals.POST("", goalHandler.CreateGoal)
				goals.GET("", goalHandler.ListGoals)
				goals.GET("/active-summary", goalHandler.GetActiveSummary)
				goals.GET("/utils/owners", goalHandler.ListOwners)
				goals.GET("/utils/teams", goalHandler.ListTeams)
				goals.GET("/:id", goalHandler.GetGoal)
				goals.DELETE("/:id", goalHandler.ArchiveGoal)
				goals.GET("/:id/editability", goalHandler.GetEditability)
				goals.GET("/:id/versions", goalHandler.ListVersions)
				goals.GET("/:id/versions/resolved", goalHandler.ResolveVersion)
				goals.GET("/:id/versions/:variant", goalHandler.GetVersion)
				goals.PUT("/:id/draft", goalHandler.UpdateDraft)
				goals.POST("/:id/publish", goalHandler.PublishGoal)
				goals.POST("/:id/clone", goalHandler.CloneGoal)
			}

			// Campaign routes
			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.ListCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaign)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.DELETE("/:id", campaignHandler.ArchiveCampaign)
			}

			// Conversation routes (read side; writes come through /ingest)
			conversations := protected.Group("/conversations")
			{
				conversations.GET("", conversationHandler.ListConversations)
			}

			// Reference-data aliases the dashboard's account pages consume
			protected.GET("/accounts_users", goalHandler.ListOwners)
			protected.GET("/accounts_teams", teamHandler.GetTeams)

			// Team routes
			teams := protected.Group("/teams")
			{
				teams.POST("", teamHandler.CreateTeam)
				teams.GET("", teamHandler.GetTeams)
				teams.GET("/:id", teamHandler.GetTeam)
				teams.PUT("/:id", teamHandler.UpdateTeam)
				teams.DELETE("/:id", teamHandler.DeleteTeam)
				teams.POST("/:id/members", teamHandler.AddMember)
				teams.DELETE("/:id/members/:user_id", teamHandler.RemoveMember)
			}

			// Analytics routes
			analytics := protected.Group("/analytics")
			{
				analytics.GET("/summary", analyticsHandler.GetSummary)
				analytics.GET("/export", analyticsHandler.ExportCampaignReport)
			}

			// Activity routes
			activity := protected.Group("/activity")
			{
				activity.GET("", activityHandler.GetActivity)
				activity.GET("/stream", activityHandler.StreamActivitySSE)
			}

			// Ingest key management
			apiKeys := protected.Group("/api-key")
			{
				apiKeys.POST("/rotate", apiKeyHandler.Rotate)
				apiKeys.GET("", apiKeyHandler.Get)
				apiKeys.PUT("/status", apiKeyHandler.UpdateStatus)
				apiKeys.DELETE("", apiKeyHandler.Revoke)
			}

			// Admin routes
			admin := protected.Group("/admin")
			{
				admin.POST("/register", adminHandler.Register)
				admin.GET("/users", adminHandler.GetAllUsers)
				admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
				admin.POST("/users/:id/reset-password", adminHandler.ResetPassword)
				admin.GET("/roles", adminHandler.GetAllRoles)
				admin.GET("/users/:id/roles", adminHandler.GetUserRoles)
				admin.POST("/users/:id/roles", adminHandler.AssignRoleToUser)
				admin.DELETE("/users/:id/roles", adminHandler.RemoveRoleFromUser)
			}
		}
	}

	return r
}
