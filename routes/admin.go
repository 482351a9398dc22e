package routes

import (
	"crickpick/controllers"
	"crickpick/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up admin routes
func SetupAdminRoutes(router *gin.Engine) {
	// Public admin routes (login only - admins are added via the addadmin tool)
	adminPublic := router.Group("/admin")
	{
		adminPublic.POST("/login", controllers.AdminLogin)
	}

	// Protected admin routes
	admin := router.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		// Question catalog management
		admin.GET("/questions", controllers.ListQuestions)
		admin.POST("/questions", middlewares.RBACMiddleware("questions", "write"), controllers.CreateQuestion)
		admin.PUT("/questions/:id", middlewares.RBACMiddleware("questions", "write"), controllers.UpdateQuestion)
		admin.DELETE("/questions/:id", middlewares.RBACMiddleware("questions", "write"), controllers.DeleteQuestion)

		// Match results and scoring
		admin.GET("/results/:matchId", controllers.GetMatchResult)
		admin.POST("/results", middlewares.RBACMiddleware("results", "write"), controllers.SaveMatchResult)
		admin.POST("/results/:matchId/evaluate", middlewares.RBACMiddleware("results", "evaluate"), controllers.EvaluateMatch)
		admin.POST("/results/:matchId/reset", middlewares.RBACMiddleware("results", "reset"), controllers.ResetResult)
		admin.POST("/results/:matchId/reset-predictions", middlewares.RBACMiddleware("results", "reset"), controllers.ResetPredictions)

		// Leaderboard maintenance
		admin.POST("/leaderboard/refresh", middlewares.RBACMiddleware("leaderboard", "refresh"), controllers.RefreshGlobalLeaderboard)
		admin.POST("/leaderboard/weekly-rollover", middlewares.RBACMiddleware("leaderboard", "refresh"), controllers.RolloverWeekly)

		// Admin action logs
		admin.GET("/logs", controllers.GetAdminActionLogs)
	}
}
