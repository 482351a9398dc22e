package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"crickpick/db"
	"crickpick/middlewares"
	"crickpick/models"
	"crickpick/scoring"
	"crickpick/services"
	"crickpick/structs"
	"crickpick/websocket"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveMatchResult creates or updates the authoritative result for a match,
// keyed by matchId. Player-name fields are checked against the option lists
// of the name-based questions; near-misses come back as suggestions so typos
// get caught before an evaluation pass runs against them.
func SaveMatchResult(ctx *gin.Context) {
	var request structs.MatchResultRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.MatchResult
	err := db.GetCollection(db.MatchResultsCollection).FindOne(dbCtx, bson.M{"matchId": request.MatchID}).Decode(&existing)
	if err == nil && existing.IsEvaluated {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Match already evaluated; reset it before changing the result"})
		return
	}
	if err != nil && err != mongo.ErrNoDocuments {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
		return
	}

	suggestions := suggestPlayerNames(dbCtx, request)

	adminEmail, _ := ctx.Get("adminEmail")
	createdBy, _ := adminEmail.(string)

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"winner":            request.Winner,
			"team1Score":        request.Team1Score,
			"team2Score":        request.Team2Score,
			"highestTotal":      request.HighestTotal,
			"topBatsmanId":      request.TopBatsmanID,
			"topBowlerId":       request.TopBowlerID,
			"moreSixes":         request.MoreSixes,
			"predictionResults": request.PredictionResults,
			"isEvaluated":       false,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{
			"matchId":   request.MatchID,
			"createdBy": createdBy,
			"createdAt": now,
		},
	}

	_, err = db.GetCollection(db.MatchResultsCollection).UpdateOne(
		dbCtx,
		bson.M{"matchId": request.MatchID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result", "message": err.Error()})
		return
	}

	middlewares.LogAdminAction(ctx, "save_result", "matchResult", request.MatchID, map[string]interface{}{
		"winner": request.Winner,
	})

	response := gin.H{"message": "Match result saved", "matchId": request.MatchID}
	if len(suggestions) > 0 {
		response["nameSuggestions"] = suggestions
	}
	ctx.JSON(http.StatusOK, response)
}

// GetMatchResult fetches the stored result for a match
func GetMatchResult(ctx *gin.Context) {
	matchID := ctx.Param("matchId")

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result models.MatchResult
	err := db.GetCollection(db.MatchResultsCollection).FindOne(dbCtx, bson.M{"matchId": matchID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"result": result})
}

// EvaluateMatch scores every prediction for a match against its stored
// result. Safe to call again after correcting the result; the pass reconciles
// aggregates instead of double counting.
func EvaluateMatch(ctx *gin.Context) {
	matchID := ctx.Param("matchId")

	dbCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	summary, err := services.EvaluateMatchPredictions(dbCtx, matchID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEvaluationInProgress):
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrResultNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No result saved for this match"})
		case errors.Is(err, services.ErrResultsNotDefined):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Result has no answers to score against"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Evaluation failed", "message": err.Error()})
		}
		return
	}

	middlewares.LogAdminAction(ctx, "evaluate_match", "matchResult", matchID, map[string]interface{}{
		"scored":        summary.Scored,
		"unscored":      summary.Unscored,
		"usersAffected": summary.UsersAffected,
	})

	broadcastMatchLeaderboards(matchID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Match evaluated", "summary": summary})
}

// ResetResult deletes a match's result, answers, leaderboard and aggregate
// contributions.
func ResetResult(ctx *gin.Context) {
	matchID := ctx.Param("matchId")

	dbCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	summary, err := services.ResetMatchResult(dbCtx, matchID)
	if err != nil {
		respondResetError(ctx, err)
		return
	}

	middlewares.LogAdminAction(ctx, "reset_result", "matchResult", matchID, map[string]interface{}{
		"answersDeleted": summary.AnswersDeleted,
		"usersAffected":  summary.UsersAffected,
	})

	broadcastMatchLeaderboards(matchID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Match result reset", "summary": summary})
}

// ResetPredictions deletes a match's answers and their aggregate contribution
// but keeps the result record so the match can be rescored from scratch.
func ResetPredictions(ctx *gin.Context) {
	matchID := ctx.Param("matchId")

	dbCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	summary, err := services.ResetMatchPredictions(dbCtx, matchID)
	if err != nil {
		respondResetError(ctx, err)
		return
	}

	middlewares.LogAdminAction(ctx, "reset_predictions", "matchResult", matchID, map[string]interface{}{
		"answersDeleted": summary.AnswersDeleted,
		"usersAffected":  summary.UsersAffected,
	})

	broadcastMatchLeaderboards(matchID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Match predictions reset", "summary": summary})
}

// RefreshGlobalLeaderboard recomputes every user's global leaderboard row
func RefreshGlobalLeaderboard(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	refreshed, err := services.RefreshGlobalLeaderboard(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed", "message": err.Error()})
		return
	}

	middlewares.LogAdminAction(ctx, "refresh_global_leaderboard", "leaderboard", "global", map[string]interface{}{
		"usersRefreshed": refreshed,
	})

	broadcastGlobalLeaderboard()

	ctx.JSON(http.StatusOK, gin.H{"message": "Global leaderboard refreshed", "usersRefreshed": refreshed})
}

// RolloverWeekly zeroes every user's weekly points at a period boundary
func RolloverWeekly(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reset, err := services.ResetWeeklyPoints(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Weekly rollover failed", "message": err.Error()})
		return
	}

	middlewares.LogAdminAction(ctx, "weekly_rollover", "leaderboard", "weekly", map[string]interface{}{
		"usersReset": reset,
	})

	broadcastWeeklyLeaderboard()

	ctx.JSON(http.StatusOK, gin.H{"message": "Weekly points reset", "usersReset": reset})
}

func respondResetError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEvaluationInProgress):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrResultNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No result saved for this match"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed", "message": err.Error()})
	}
}

// suggestPlayerNames fuzzy-matches the entered player names against the
// option lists of the name-based questions. Sentinel answers ("any-..." and
// "no-...") are never flagged.
func suggestPlayerNames(ctx context.Context, request structs.MatchResultRequest) map[string][]string {
	entered := map[string]string{
		"topBatsmanId": request.TopBatsmanID,
		"topBowlerId":  request.TopBowlerID,
	}

	known := loadKnownPlayerNames(ctx)
	if len(known) == 0 {
		return nil
	}

	suggestions := make(map[string][]string)
	for field, name := range entered {
		if name == "" || strings.HasPrefix(name, "any-") || strings.HasPrefix(name, "no-") {
			continue
		}
		standardized := scoring.StandardizePlayerName(name)
		if _, ok := known[strings.ToLower(standardized)]; ok {
			continue
		}
		ranks := fuzzy.RankFindNormalizedFold(standardized, knownList(known))
		if len(ranks) == 0 {
			continue
		}
		sort.Sort(ranks)
		top := ranks
		if len(top) > 3 {
			top = top[:3]
		}
		for _, r := range top {
			suggestions[field] = append(suggestions[field], r.Target)
		}
	}
	if len(suggestions) == 0 {
		return nil
	}
	return suggestions
}

func loadKnownPlayerNames(ctx context.Context) map[string]string {
	cursor, err := db.GetCollection(db.QuestionsCollection).Find(ctx, bson.M{
		"type": bson.M{"$in": []string{"topBatsman", "topBowler"}},
	})
	if err != nil {
		log.Println("Failed to load player options for name check:", err)
		return nil
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		log.Println("Failed to decode player options:", err)
		return nil
	}

	known := make(map[string]string)
	for _, q := range questions {
		for _, opt := range q.Options {
			name := scoring.StandardizePlayerName(opt.Value)
			known[strings.ToLower(name)] = name
		}
	}
	return known
}

func knownList(known map[string]string) []string {
	names := make([]string, 0, len(known))
	for _, name := range known {
		names = append(names, name)
	}
	return names
}

func broadcastMatchLeaderboards(matchID string) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if entries, err := services.FetchMatchLeaderboard(dbCtx, matchID); err == nil {
		websocket.BroadcastLeaderboard(websocket.MatchScope(matchID), entries)
	} else {
		log.Println("Failed to broadcast match leaderboard:", err)
	}

	broadcastGlobalLeaderboard()
	broadcastWeeklyLeaderboard()
}

func broadcastGlobalLeaderboard() {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if entries, err := services.FetchGlobalLeaderboard(dbCtx, 100); err == nil {
		websocket.BroadcastLeaderboard(websocket.ScopeGlobal, entries)
	} else {
		log.Println("Failed to broadcast global leaderboard:", err)
	}
}

func broadcastWeeklyLeaderboard() {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if users, err := services.FetchWeeklyLeaderboard(dbCtx, 100); err == nil {
		websocket.BroadcastLeaderboard(websocket.ScopeWeekly, users)
	} else {
		log.Println("Failed to broadcast weekly leaderboard:", err)
	}
}
