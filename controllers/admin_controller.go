package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"crickpick/db"
	"crickpick/models"
	"crickpick/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminSignupRequest represents the signup request
type AdminSignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"` // "admin" or "moderator"
}

// AdminLoginRequest represents the login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSignup handles admin/moderator signup
func AdminSignup(ctx *gin.Context) {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return
	}

	var request AdminSignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if request.Role != "admin" && request.Role != "moderator" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be 'admin' or 'moderator'"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existingAdmin models.Admin
	err := db.GetCollection(db.AdminsCollection).FindOne(dbCtx, bson.M{"email": request.Email}).Decode(&existingAdmin)
	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Admin already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password", "message": err.Error()})
		return
	}

	now := time.Now()
	newAdmin := models.Admin{
		Email:     request.Email,
		Password:  hashedPassword,
		Role:      request.Role,
		Name:      request.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := db.GetCollection(db.AdminsCollection).InsertOne(dbCtx, newAdmin)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin", "message": err.Error()})
		return
	}
	newAdmin.ID = result.InsertedID.(primitive.ObjectID)

	token, err := generateJWT(newAdmin.Email, cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Admin signup successful",
		"accessToken": token,
		"admin": gin.H{
			"id":    newAdmin.ID.Hex(),
			"email": newAdmin.Email,
			"name":  newAdmin.Name,
			"role":  newAdmin.Role,
		},
	})
}

// AdminLogin handles admin/moderator login
func AdminLogin(ctx *gin.Context) {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return
	}

	var request AdminLoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := db.GetCollection(db.AdminsCollection).FindOne(dbCtx, bson.M{"email": request.Email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
		return
	}

	if !utils.CheckPasswordHash(request.Password, admin.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := generateJWT(admin.Email, cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Admin login successful",
		"accessToken": token,
		"admin": gin.H{
			"id":    admin.ID.Hex(),
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

// GetAdminActionLogs fetches admin action logs with pagination
func GetAdminActionLogs(ctx *gin.Context) {
	page := int64(1)
	limit := int64(50)

	if pageStr := ctx.Query("page"); pageStr != "" {
		if p, err := parseInt64(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := parseInt64(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	skip := (page - 1) * limit

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.GetCollection(db.AdminActionLogsCollection)

	filter := bson.M{}
	if action := ctx.Query("action"); action != "" {
		filter["action"] = action
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"timestamp": -1})
	cursor, err := collection.Find(dbCtx, filter, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var logs []models.AdminActionLog
	if err := cursor.All(dbCtx, &logs); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode logs", "message": err.Error()})
		return
	}

	total, err := collection.CountDocuments(dbCtx, filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count logs", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func generateJWT(email, secret string, expiryMinutes int) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
