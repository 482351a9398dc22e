package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionAnswer is one user's submitted value for one question on one
// match. IsCorrect and PointsEarned stay nil until an evaluation pass scores
// the answer; a reset deletes the document entirely and reverses its
// contribution to the user's aggregates.
type PredictionAnswer struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	MatchID          string             `bson:"matchId" json:"matchId"`
	PredictionGameID string             `bson:"predictionGameId,omitempty" json:"predictionGameId,omitempty"`
	QuestionID       string             `bson:"questionId" json:"questionId"`
	Answer           string             `bson:"answer" json:"answer"`
	IsCorrect        *bool              `bson:"isCorrect,omitempty" json:"isCorrect,omitempty"`
	PointsEarned     *int               `bson:"pointsEarned,omitempty" json:"pointsEarned,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
	EvaluatedAt      *time.Time         `bson:"evaluatedAt,omitempty" json:"evaluatedAt,omitempty"`
}
