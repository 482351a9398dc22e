package controllers

import (
	"context"
	"net/http"
	"time"

	"crickpick/db"
	"crickpick/middlewares"
	"crickpick/models"
	"crickpick/scoring"
	"crickpick/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListQuestions returns questions for players. Inactive questions are hidden
// unless includeInactive=true is passed (admin views).
func ListQuestions(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if ctx.Query("includeInactive") == "true" {
		filter = bson.M{}
	}

	cursor, err := db.GetCollection(db.QuestionsCollection).Find(dbCtx, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var questions []models.Question
	if err := cursor.All(dbCtx, &questions); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode questions", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"questions": questions})
}

// CreateQuestion adds a new question to the catalog
func CreateQuestion(ctx *gin.Context) {
	var request structs.QuestionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if scoring.QuestionTypeFromString(request.Type) == scoring.TypeUnknown {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown question type", "type": request.Type})
		return
	}

	points := request.Points
	if points <= 0 {
		points = scoring.DefaultPoints
	}

	now := time.Now()
	question := models.Question{
		Text:           request.Text,
		Type:           request.Type,
		Points:         points,
		NegativePoints: request.NegativePoints,
		Options:        toModelOptions(request.Options),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if request.IsActive != nil {
		question.IsActive = *request.IsActive
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.GetCollection(db.QuestionsCollection).InsertOne(dbCtx, question)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question", "message": err.Error()})
		return
	}
	question.ID = result.InsertedID.(primitive.ObjectID)

	middlewares.LogAdminAction(ctx, "create_question", "question", question.ID.Hex(), map[string]interface{}{
		"text": question.Text,
		"type": question.Type,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Question created", "question": question})
}

// UpdateQuestion edits a question. Point values read by a running evaluation
// pass are a snapshot, so edits never corrupt an in-flight pass.
func UpdateQuestion(ctx *gin.Context) {
	questionID := ctx.Param("id")
	objID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var request structs.QuestionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if scoring.QuestionTypeFromString(request.Type) == scoring.TypeUnknown {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown question type", "type": request.Type})
		return
	}

	set := bson.M{
		"text":           request.Text,
		"type":           request.Type,
		"negativePoints": request.NegativePoints,
		"updatedAt":      time.Now(),
	}
	if request.Points > 0 {
		set["points"] = request.Points
	}
	if request.Options != nil {
		set["options"] = toModelOptions(request.Options)
	}
	if request.IsActive != nil {
		set["isActive"] = *request.IsActive
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.GetCollection(db.QuestionsCollection).UpdateOne(dbCtx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question", "message": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	middlewares.LogAdminAction(ctx, "update_question", "question", questionID, map[string]interface{}{
		"text": request.Text,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Question updated"})
}

// DeleteQuestion retires a question. The document stays in place so answer
// history written against it still resolves in the catalog.
func DeleteQuestion(ctx *gin.Context) {
	questionID := ctx.Param("id")
	objID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.GetCollection(db.QuestionsCollection).UpdateOne(
		dbCtx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question", "message": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	middlewares.LogAdminAction(ctx, "delete_question", "question", questionID, nil)

	ctx.JSON(http.StatusOK, gin.H{"message": "Question retired"})
}

func toModelOptions(options []structs.QuestionOption) []models.QuestionOption {
	if options == nil {
		return nil
	}
	out := make([]models.QuestionOption, 0, len(options))
	for _, o := range options {
		out = append(out, models.QuestionOption{ID: o.ID, Value: o.Value, Label: o.Label})
	}
	return out
}
