package services

import (
	"context"
	"fmt"
	"time"

	"crickpick/db"
	"crickpick/models"
	"crickpick/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateGlobalLeaderboard recomputes a user's season aggregates from their
// complete evaluated answer history and merges them into the global
// leaderboard record. Full recompute, never an incremental patch: after any
// reset or re-evaluation the row converges on whatever the answers now say.
func UpdateGlobalLeaderboard(ctx context.Context, userID primitive.ObjectID) error {
	cursor, err := db.GetCollection(db.PredictionAnswersCollection).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to load answer history: %w", err)
	}
	defer cursor.Close(ctx)

	var answers []models.PredictionAnswer
	if err := cursor.All(ctx, &answers); err != nil {
		return fmt.Errorf("failed to decode answer history: %w", err)
	}

	totals, matchesPlayed := scoring.GlobalTotals(answers)

	var user models.User
	err = db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to load user: %w", err)
	}

	now := time.Now()
	fields := bson.M{
		"userId":             userID,
		"displayName":        user.DisplayName,
		"photoUrl":           user.PhotoURL,
		"totalPoints":        totals.Points,
		"correctPredictions": totals.Correct,
		"totalPredictions":   totals.Total,
		"accuracy":           totals.Accuracy(),
		"matchesPlayed":      matchesPlayed,
		"lastUpdated":        now,
	}

	_, err = db.GetCollection(db.GlobalLeaderboardCollection).UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert global leaderboard entry: %w", err)
	}

	// Keep the user's headline accuracy in step with the recomputed view.
	_, err = db.GetCollection(db.UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"overallAccuracy": totals.Accuracy(), "updatedAt": now}})
	if err != nil {
		return fmt.Errorf("failed to update user accuracy: %w", err)
	}

	return nil
}

// FetchGlobalLeaderboard returns the season ranking, highest points first.
func FetchGlobalLeaderboard(ctx context.Context, limit int64) ([]models.GlobalLeaderboardEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "totalPoints", Value: -1},
		{Key: "accuracy", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := db.GetCollection(db.GlobalLeaderboardCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch global leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.GlobalLeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode global leaderboard: %w", err)
	}
	return entries, nil
}

// FetchMatchLeaderboard returns the per-match ranking, highest points first.
func FetchMatchLeaderboard(ctx context.Context, matchID string) ([]models.LeaderboardEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "points", Value: -1},
		{Key: "accuracy", Value: -1},
	})

	cursor, err := db.GetCollection(db.LeaderboardEntriesCollection).Find(ctx, bson.M{"matchId": matchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode match leaderboard: %w", err)
	}
	return entries, nil
}

// FetchWeeklyLeaderboard ranks users on their current weekly points.
func FetchWeeklyLeaderboard(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weeklyPoints", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := db.GetCollection(db.UsersCollection).Find(ctx, bson.M{"weeklyPoints": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode weekly leaderboard: %w", err)
	}
	return users, nil
}

// ResetWeeklyPoints zeroes weeklyPoints for all users at a period boundary.
// Scheduling is left to the operator; this is the endpoint-triggered action.
func ResetWeeklyPoints(ctx context.Context) (int64, error) {
	result, err := db.GetCollection(db.UsersCollection).UpdateMany(ctx,
		bson.M{"weeklyPoints": bson.M{"$ne": 0}},
		bson.M{"$set": bson.M{"weeklyPoints": 0, "updatedAt": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly points: %w", err)
	}
	return result.ModifiedCount, nil
}

// RefreshGlobalLeaderboard recomputes the global leaderboard for every user
// that has ever submitted an answer. Expensive; exposed as an explicit admin
// action rather than a background job.
func RefreshGlobalLeaderboard(ctx context.Context) (int, error) {
	userIDs, err := db.GetCollection(db.PredictionAnswersCollection).Distinct(ctx, "userId", bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to list users with answers: %w", err)
	}

	refreshed := 0
	for _, raw := range userIDs {
		userID, ok := raw.(primitive.ObjectID)
		if !ok {
			continue
		}
		if err := UpdateGlobalLeaderboard(ctx, userID); err != nil {
			return refreshed, fmt.Errorf("failed to refresh user %s: %w", userID.Hex(), err)
		}
		refreshed++
	}
	return refreshed, nil
}
