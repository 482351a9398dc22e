package routes

import (
	"crickpick/controllers"

	"github.com/gin-gonic/gin"
)

func SubmitPredictionRouteHandler(ctx *gin.Context) {
	controllers.SubmitPrediction(ctx)
}

func GetMyPredictionsRouteHandler(ctx *gin.Context) {
	controllers.GetMyPredictions(ctx)
}

func ListQuestionsRouteHandler(ctx *gin.Context) {
	controllers.ListQuestions(ctx)
}
