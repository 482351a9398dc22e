package routes

import (
	"crickpick/controllers"

	"github.com/gin-gonic/gin"
)

func GetGlobalLeaderboardRouteHandler(ctx *gin.Context) {
	controllers.GetGlobalLeaderboard(ctx)
}

func GetWeeklyLeaderboardRouteHandler(ctx *gin.Context) {
	controllers.GetWeeklyLeaderboard(ctx)
}

func GetMatchLeaderboardRouteHandler(ctx *gin.Context) {
	controllers.GetMatchLeaderboard(ctx)
}
