package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"crickpick/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GlobalRow is one ranked row of the global leaderboard response
type GlobalRow struct {
	Rank               int     `json:"rank"`
	UserID             string  `json:"userId"`
	Name               string  `json:"name"`
	AvatarURL          string  `json:"avatarUrl,omitempty"`
	TotalPoints        int     `json:"totalPoints"`
	CorrectPredictions int     `json:"correctPredictions"`
	TotalPredictions   int     `json:"totalPredictions"`
	Accuracy           float64 `json:"accuracy"`
	MatchesPlayed      int     `json:"matchesPlayed"`
	CurrentUser        bool    `json:"currentUser"`
}

// MatchRow is one ranked row of a match leaderboard response
type MatchRow struct {
	Rank               int     `json:"rank"`
	UserID             string  `json:"userId"`
	Name               string  `json:"name"`
	AvatarURL          string  `json:"avatarUrl,omitempty"`
	Points             int     `json:"points"`
	CorrectPredictions int     `json:"correctPredictions"`
	TotalPredictions   int     `json:"totalPredictions"`
	Accuracy           float64 `json:"accuracy"`
	CurrentUser        bool    `json:"currentUser"`
}

// WeeklyRow is one ranked row of the weekly leaderboard response
type WeeklyRow struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	WeeklyPoints int    `json:"weeklyPoints"`
	CurrentUser  bool   `json:"currentUser"`
}

// GetGlobalLeaderboard returns the season-wide standings
func GetGlobalLeaderboard(c *gin.Context) {
	currentUserID := currentUserID(c)
	limit := queryLimit(c, 100)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := services.FetchGlobalLeaderboard(dbCtx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard", "message": err.Error()})
		return
	}

	rows := make([]GlobalRow, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, GlobalRow{
			Rank:               i + 1,
			UserID:             entry.UserID.Hex(),
			Name:               entry.DisplayName,
			AvatarURL:          entry.PhotoURL,
			TotalPoints:        entry.TotalPoints,
			CorrectPredictions: entry.CorrectPredictions,
			TotalPredictions:   entry.TotalPredictions,
			Accuracy:           entry.Accuracy,
			MatchesPlayed:      entry.MatchesPlayed,
			CurrentUser:        entry.UserID == currentUserID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

// GetMatchLeaderboard returns the standings for one match
func GetMatchLeaderboard(c *gin.Context) {
	matchID := c.Param("matchId")
	currentUserID := currentUserID(c)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := services.FetchMatchLeaderboard(dbCtx, matchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard", "message": err.Error()})
		return
	}

	rows := make([]MatchRow, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, MatchRow{
			Rank:               i + 1,
			UserID:             entry.UserID.Hex(),
			Name:               entry.DisplayName,
			AvatarURL:          entry.PhotoURL,
			Points:             entry.Points,
			CorrectPredictions: entry.CorrectPredictions,
			TotalPredictions:   entry.TotalPredictions,
			Accuracy:           entry.Accuracy,
			CurrentUser:        entry.UserID == currentUserID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"matchId": matchID, "leaderboard": rows})
}

// GetWeeklyLeaderboard returns the current week's standings, built from the
// users collection rather than a materialized view.
func GetWeeklyLeaderboard(c *gin.Context) {
	currentUserID := currentUserID(c)
	limit := queryLimit(c, 100)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := services.FetchWeeklyLeaderboard(dbCtx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard", "message": err.Error()})
		return
	}

	rows := make([]WeeklyRow, 0, len(users))
	for i, user := range users {
		rows = append(rows, WeeklyRow{
			Rank:         i + 1,
			UserID:       user.ID.Hex(),
			Name:         user.DisplayName,
			AvatarURL:    user.PhotoURL,
			WeeklyPoints: user.WeeklyPoints,
			CurrentUser:  user.ID == currentUserID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

func currentUserID(c *gin.Context) primitive.ObjectID {
	raw, exists := c.Get("userID")
	if !exists {
		return primitive.NilObjectID
	}
	id, _ := raw.(primitive.ObjectID)
	return id
}

func queryLimit(c *gin.Context, fallback int64) int64 {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return fallback
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
