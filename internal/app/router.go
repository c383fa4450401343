package app

import (
	"skillcheck_backend/docs"
	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/middleware"
	"skillcheck_backend/internal/model"
	"skillcheck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	router.GET("/api/health", c.health.HealthCheck)
	router.POST("/api/user/register", c.auth.Register)
	router.POST("/api/user/login", c.auth.Login)

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/user/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar", c.user.UploadAvatar)

		assessment := authGroup.Group("/assessment")
		{
			assessment.GET("/questions", c.assessment.ListQuestions)
			assessment.POST("/start", c.assessment.StartAssessment)
			assessment.POST("/submit-response", c.assessment.SubmitResponse)
			assessment.POST("/submit", c.assessment.SubmitLevel)
			assessment.GET("/results", c.assessment.GetResults)
			assessment.GET("/history", c.assessment.GetHistory)
			assessment.POST("/telemetry", c.telemetry.RecordEvent)
			assessment.GET("/telemetry-summary", middleware.RoleMiddleware(model.Admin), c.telemetry.GetSummary)
		}
	}

	// Admin question bank
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/questions", c.question.CreateQuestion)
		admin.GET("/questions", c.question.ListQuestions)
		admin.GET("/questions/:id", c.question.GetQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)
	}
}
