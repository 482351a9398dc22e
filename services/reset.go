package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"crickpick/db"
	"crickpick/models"
	"crickpick/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResetSummary reports what a reset removed.
type ResetSummary struct {
	MatchID        string `json:"matchId"`
	AnswersDeleted int    `json:"answersDeleted"`
	UsersAffected  int    `json:"usersAffected"`
	ResultDeleted  bool   `json:"resultDeleted"`
}

// ResetMatchResult tears a match down completely: the result record, every
// prediction answer, the match leaderboard, and each affected user's
// aggregate contribution (floored at zero).
func ResetMatchResult(ctx context.Context, matchID string) (*ResetSummary, error) {
	return resetMatch(ctx, matchID, true)
}

// ResetMatchPredictions deletes the answers and their aggregate contribution
// but keeps the result record, flipping it back to unevaluated so a fresh
// round of predictions can be scored against it.
func ResetMatchPredictions(ctx context.Context, matchID string) (*ResetSummary, error) {
	return resetMatch(ctx, matchID, false)
}

func resetMatch(ctx context.Context, matchID string, deleteResult bool) (*ResetSummary, error) {
	token, err := acquireMatchLease(ctx, matchID)
	if err != nil {
		return nil, err
	}
	defer releaseMatchLease(ctx, matchID, token)

	answers, err := loadMatchAnswers(ctx, matchID)
	if err != nil {
		return nil, err
	}

	// The reversal amounts come from the stored evaluated answers, the same
	// source of truth evaluation wrote. Unevaluated answers never touched
	// any aggregate, so they only get deleted.
	reversals := scoring.ReversalDeltas(answers)

	now := time.Now()
	if err := reverseAggregates(ctx, reversals, now); err != nil {
		return nil, err
	}

	if err := deleteAnswers(ctx, answers); err != nil {
		return nil, err
	}

	if err := deleteMatchLeaderboard(ctx, matchID); err != nil {
		return nil, err
	}

	results := db.GetCollection(db.MatchResultsCollection)
	if deleteResult {
		if _, err := results.DeleteOne(ctx, bson.M{"matchId": matchID}); err != nil {
			return nil, fmt.Errorf("failed to delete match result: %w", err)
		}
	} else {
		_, err := results.UpdateOne(ctx, bson.M{"matchId": matchID},
			bson.M{"$set": bson.M{"isEvaluated": false, "updatedAt": now}})
		if err != nil {
			return nil, fmt.Errorf("failed to reset result evaluation flag: %w", err)
		}
	}

	// The global view is recomputed from what remains, so it reflects the
	// reversal without any stored delta bookkeeping.
	for userID := range reversals {
		if err := UpdateGlobalLeaderboard(ctx, userID); err != nil {
			log.Printf("Failed to refresh global leaderboard for user %s: %v", userID.Hex(), err)
		}
	}

	return &ResetSummary{
		MatchID:        matchID,
		AnswersDeleted: len(answers),
		UsersAffected:  len(reversals),
		ResultDeleted:  deleteResult,
	}, nil
}

// reverseAggregates subtracts each user's prior contribution, clamping every
// aggregate at zero. The clamp covers a reset run twice and manual edits
// made between evaluation and reset; totals never go negative.
func reverseAggregates(ctx context.Context, reversals map[primitive.ObjectID]scoring.AggregateDelta, now time.Time) error {
	users := db.GetCollection(db.UsersCollection)

	var writes []mongo.WriteModel
	for userID, delta := range reversals {
		pipeline := bson.A{bson.M{"$set": bson.M{
			"totalPoints":        flooredSubtract("$totalPoints", delta.Points),
			"weeklyPoints":       flooredSubtract("$weeklyPoints", delta.Points),
			"totalPredictions":   flooredSubtract("$totalPredictions", delta.Total),
			"correctPredictions": flooredSubtract("$correctPredictions", delta.Correct),
			"updatedAt":          now,
		}}}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": userID}).
			SetUpdate(pipeline))
	}

	if err := db.CommitChunked(ctx, users, writes); err != nil {
		return fmt.Errorf("failed to reverse user aggregates: %w", err)
	}
	return nil
}

func flooredSubtract(field string, amount int) bson.M {
	return bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{field, amount}}}}
}

// deleteAnswers removes the answer documents themselves (not merely the
// scored fields) in chunked batches.
func deleteAnswers(ctx context.Context, answers []models.PredictionAnswer) error {
	var writes []mongo.WriteModel
	for _, answer := range answers {
		writes = append(writes, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": answer.ID}))
	}
	if err := db.CommitChunked(ctx, db.GetCollection(db.PredictionAnswersCollection), writes); err != nil {
		return fmt.Errorf("failed to delete prediction answers: %w", err)
	}
	return nil
}

// deleteMatchLeaderboard drops the header and all of its entries.
func deleteMatchLeaderboard(ctx context.Context, matchID string) error {
	entries := db.GetCollection(db.LeaderboardEntriesCollection)
	if _, err := entries.DeleteMany(ctx, bson.M{"matchId": matchID}); err != nil {
		return fmt.Errorf("failed to delete leaderboard entries: %w", err)
	}

	headers := db.GetCollection(db.LeaderboardsCollection)
	if _, err := headers.DeleteMany(ctx, bson.M{"matchId": matchID, "type": "match"}); err != nil {
		return fmt.Errorf("failed to delete leaderboard header: %w", err)
	}
	return nil
}
