package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"crickpick/db"
	"crickpick/models"
	"crickpick/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrResultNotFound    = errors.New("match result not found")
	ErrResultsNotDefined = errors.New("match result has no prediction results defined")
)

// EvaluationSummary reports what a pass did, for the admin response and the
// audit log.
type EvaluationSummary struct {
	MatchID       string `json:"matchId"`
	Scored        int    `json:"scored"`
	Unscored      int    `json:"unscored"`
	UsersAffected int    `json:"usersAffected"`
}

// findMatchResult looks the result up by matchId, not document id.
func findMatchResult(ctx context.Context, matchID string) (*models.MatchResult, error) {
	var result models.MatchResult
	err := db.GetCollection(db.MatchResultsCollection).FindOne(ctx, bson.M{"matchId": matchID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to load match result: %w", err)
	}
	return &result, nil
}

func loadMatchAnswers(ctx context.Context, matchID string) ([]models.PredictionAnswer, error) {
	cursor, err := db.GetCollection(db.PredictionAnswersCollection).Find(ctx, bson.M{"matchId": matchID})
	if err != nil {
		return nil, fmt.Errorf("failed to load prediction answers: %w", err)
	}
	defer cursor.Close(ctx)

	var answers []models.PredictionAnswer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode prediction answers: %w", err)
	}
	return answers, nil
}

// EvaluateMatchPredictions scores every stored answer for a match against
// its result, persists per-answer outcomes, applies user aggregate deltas,
// rewrites the match leaderboard, and refreshes the global leaderboard for
// every affected user. Re-running it with unchanged data is a no-op on
// aggregates, so it doubles as the recovery path after a partial failure.
func EvaluateMatchPredictions(ctx context.Context, matchID string) (*EvaluationSummary, error) {
	token, err := acquireMatchLease(ctx, matchID)
	if err != nil {
		return nil, err
	}
	defer releaseMatchLease(ctx, matchID, token)

	result, err := findMatchResult(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if len(result.PredictionResults) == 0 {
		return nil, ErrResultsNotDefined
	}

	catalog, err := LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	answers, err := loadMatchAnswers(ctx, matchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	totals := make(scoring.MatchTotals)
	deltas := make(map[primitive.ObjectID]scoring.AggregateDelta)
	var writes []mongo.WriteModel
	unscored := 0

	for _, answer := range answers {
		def := catalog.Lookup(answer.QuestionID)

		correctAnswer, ok := scoring.ResolveForQuestion(result, answer.QuestionID, matchID, def)
		if !ok {
			// Not an error and not a wrong answer: the question simply has
			// no resolvable correct answer, so this one stays unscored.
			log.Printf("No correct answer resolvable for question %s on match %s, skipping answer %s",
				answer.QuestionID, matchID, answer.ID.Hex())
			unscored++
			continue
		}
		outcome := scoring.Evaluate(answer.Answer, correctAnswer, def)
		totals.Add(answer.UserID, outcome)
		deltas[answer.UserID] = deltas[answer.UserID].Add(scoring.RescoreDelta(answer, outcome))

		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": answer.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"isCorrect":    outcome.IsCorrect,
				"pointsEarned": outcome.PointsEarned,
				"evaluatedAt":  now,
				"updatedAt":    now,
			}}))
	}

	if err := db.CommitChunked(ctx, db.GetCollection(db.PredictionAnswersCollection), writes); err != nil {
		return nil, err
	}

	if err := applyAggregateDeltas(ctx, deltas, now); err != nil {
		return nil, err
	}

	if err := writeMatchLeaderboard(ctx, matchID, totals, now); err != nil {
		return nil, err
	}

	// Only set once the whole pass has been applied; a crash before this
	// point leaves isEvaluated false and re-evaluation as the remedy.
	_, err = db.GetCollection(db.MatchResultsCollection).UpdateOne(ctx,
		bson.M{"_id": result.ID},
		bson.M{"$set": bson.M{"isEvaluated": true, "updatedAt": now}})
	if err != nil {
		return nil, fmt.Errorf("failed to mark result evaluated: %w", err)
	}

	for userID := range totals {
		if err := UpdateGlobalLeaderboard(ctx, userID); err != nil {
			log.Printf("Failed to refresh global leaderboard for user %s: %v", userID.Hex(), err)
		}
	}

	return &EvaluationSummary{
		MatchID:       matchID,
		Scored:        len(answers) - unscored,
		Unscored:      unscored,
		UsersAffected: len(totals),
	}, nil
}

// applyAggregateDeltas moves each affected user's running totals by the
// computed delta. Zero deltas (idempotent re-evaluation) are skipped.
func applyAggregateDeltas(ctx context.Context, deltas map[primitive.ObjectID]scoring.AggregateDelta, now time.Time) error {
	users := db.GetCollection(db.UsersCollection)

	var writes []mongo.WriteModel
	for userID, delta := range deltas {
		if delta.IsZero() {
			continue
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": userID}).
			SetUpdate(bson.M{
				"$inc": bson.M{
					"totalPoints":        delta.Points,
					"weeklyPoints":       delta.Points,
					"totalPredictions":   delta.Total,
					"correctPredictions": delta.Correct,
				},
				"$set": bson.M{"updatedAt": now},
			}))
	}

	if err := db.CommitChunked(ctx, users, writes); err != nil {
		return fmt.Errorf("failed to apply user aggregate deltas: %w", err)
	}
	return nil
}

// writeMatchLeaderboard finds or creates the leaderboard header for the
// match and upserts one entry per user, overwriting scoring fields and
// leaving anything else on the entry untouched.
func writeMatchLeaderboard(ctx context.Context, matchID string, totals scoring.MatchTotals, now time.Time) error {
	headers := db.GetCollection(db.LeaderboardsCollection)

	var header models.Leaderboard
	err := headers.FindOneAndUpdate(ctx,
		bson.M{"matchId": matchID, "type": "match"},
		bson.M{
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"matchId": matchID, "type": "match", "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&header)
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard header: %w", err)
	}

	profiles, err := loadUserProfiles(ctx, totals)
	if err != nil {
		return err
	}

	var writes []mongo.WriteModel
	for userID, userTotals := range totals {
		fields := bson.M{
			"leaderboardId":      header.ID,
			"matchId":            matchID,
			"points":             userTotals.Points,
			"correctPredictions": userTotals.Correct,
			"totalPredictions":   userTotals.Total,
			"accuracy":           userTotals.Accuracy(),
			"updatedAt":          now,
		}
		if profile, ok := profiles[userID]; ok {
			fields["displayName"] = profile.DisplayName
			fields["photoUrl"] = profile.PhotoURL
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"leaderboardId": header.ID, "userId": userID}).
			SetUpdate(bson.M{
				"$set":         fields,
				"$setOnInsert": bson.M{"userId": userID},
			}).
			SetUpsert(true))
	}

	if err := db.CommitChunked(ctx, db.GetCollection(db.LeaderboardEntriesCollection), writes); err != nil {
		return fmt.Errorf("failed to upsert leaderboard entries: %w", err)
	}
	return nil
}

// loadUserProfiles fetches display fields for every user on the leaderboard
// in one query.
func loadUserProfiles(ctx context.Context, totals scoring.MatchTotals) (map[primitive.ObjectID]models.User, error) {
	ids := make([]primitive.ObjectID, 0, len(totals))
	for userID := range totals {
		ids = append(ids, userID)
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.User{}, nil
	}

	cursor, err := db.GetCollection(db.UsersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load user profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user profiles: %w", err)
	}

	profiles := make(map[primitive.ObjectID]models.User, len(users))
	for _, user := range users {
		profiles[user.ID] = user
	}
	return profiles, nil
}
