package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchResult is the admin-entered authoritative outcome for one match,
// looked up by matchId (not document id). PredictionResults maps question
// keys to correct answers; older records used several key formats, so the
// resolver tries candidates rather than assuming one spelling.
type MatchResult struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MatchID           string             `bson:"matchId" json:"matchId"`
	Winner            string             `bson:"winner" json:"winner"`
	Team1Score        string             `bson:"team1Score,omitempty" json:"team1Score,omitempty"`
	Team2Score        string             `bson:"team2Score,omitempty" json:"team2Score,omitempty"`
	HighestTotal      int                `bson:"highestTotal,omitempty" json:"highestTotal,omitempty"`
	TopBatsmanID      string             `bson:"topBatsmanId,omitempty" json:"topBatsmanId,omitempty"`
	TopBowlerID       string             `bson:"topBowlerId,omitempty" json:"topBowlerId,omitempty"`
	MoreSixes         string             `bson:"moreSixes,omitempty" json:"moreSixes,omitempty"`
	PredictionResults map[string]string  `bson:"predictionResults" json:"predictionResults"`
	IsEvaluated       bool               `bson:"isEvaluated" json:"isEvaluated"`
	CreatedBy         string             `bson:"createdBy" json:"createdBy"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
