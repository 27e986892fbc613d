package server

import (
	"github.com/labstack/echo/v4"

	"example.com/ai-financial-coach/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	uploadHandler *handlers.UploadHandler,
	analysisHandler *handlers.AnalysisHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	uploads := api.Group("/uploads", authMiddleware)
	uploads.POST("/transactions", uploadHandler.ParseTransactions)
	uploads.GET("/transactions/template", uploadHandler.Template)

	analyses := api.Group("/analyses", authMiddleware)
	analyses.POST("", analysisHandler.Analyze, aiRateLimiter)
	analyses.GET("", analysisHandler.List)
	analyses.GET("/:id", analysisHandler.Get)
	analyses.GET("/:id/export/json", analysisHandler.ExportJSON)
	analyses.GET("/:id/export/csv", analysisHandler.ExportCSV)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
}
