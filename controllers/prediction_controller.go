package controllers

import (
	"context"
	"net/http"
	"time"

	"crickpick/db"
	"crickpick/models"
	"crickpick/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmitPrediction records the authenticated user's answer for a question of
// a match. One answer per user+match+question: a resubmission overwrites the
// previous answer as long as the match has not been evaluated.
func SubmitPrediction(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request structs.SubmitPredictionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	questionObjID, err := primitive.ObjectIDFromHex(request.QuestionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	err = db.GetCollection(db.QuestionsCollection).FindOne(dbCtx, bson.M{"_id": questionObjID, "isActive": true}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Question not found or inactive"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
		return
	}

	// Submissions close once the match has an evaluated result.
	var result models.MatchResult
	err = db.GetCollection(db.MatchResultsCollection).FindOne(dbCtx, bson.M{"matchId": request.MatchID}).Decode(&result)
	if err == nil && result.IsEvaluated {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Match has already been evaluated; predictions are closed"})
		return
	}
	if err != nil && err != mongo.ErrNoDocuments {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
		return
	}

	now := time.Now()
	filter := bson.M{
		"userId":     userID.(primitive.ObjectID),
		"matchId":    request.MatchID,
		"questionId": request.QuestionID,
	}
	update := bson.M{
		"$set": bson.M{
			"answer":           request.Answer,
			"predictionGameId": request.PredictionGameID,
			"isCorrect":        nil,
			"pointsEarned":     nil,
			"evaluatedAt":      nil,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{
			"userId":     userID.(primitive.ObjectID),
			"matchId":    request.MatchID,
			"questionId": request.QuestionID,
			"createdAt":  now,
		},
	}

	_, err = db.GetCollection(db.PredictionAnswersCollection).UpdateOne(dbCtx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prediction", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Prediction saved"})
}

// GetMyPredictions lists the authenticated user's answers, optionally
// filtered to one match.
func GetMyPredictions(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filter := bson.M{"userId": userID.(primitive.ObjectID)}
	if matchID := ctx.Query("matchId"); matchID != "" {
		filter["matchId"] = matchID
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.GetCollection(db.PredictionAnswersCollection).Find(dbCtx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var answers []models.PredictionAnswer
	if err := cursor.All(dbCtx, &answers); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode predictions", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"predictions": answers})
}
