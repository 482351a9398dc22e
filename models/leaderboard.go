package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leaderboard is the header record for a materialized leaderboard view,
// found-or-created by (matchId, type).
type Leaderboard struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MatchID   string             `bson:"matchId" json:"matchId"`
	Type      string             `bson:"type" json:"type"` // "match"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LeaderboardEntry is one user's row under a match leaderboard header.
// Overwritten per evaluation pass, deleted wholesale on reset.
type LeaderboardEntry struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LeaderboardID      primitive.ObjectID `bson:"leaderboardId" json:"leaderboardId"`
	MatchID            string             `bson:"matchId" json:"matchId"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	DisplayName        string             `bson:"displayName" json:"displayName"`
	PhotoURL           string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Points             int                `bson:"points" json:"points"`
	CorrectPredictions int                `bson:"correctPredictions" json:"correctPredictions"`
	TotalPredictions   int                `bson:"totalPredictions" json:"totalPredictions"`
	Accuracy           float64            `bson:"accuracy" json:"accuracy"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GlobalLeaderboardEntry is the season-wide row for one user, recomputed
// from the user's full evaluated answer history on every refresh rather than
// patched incrementally.
type GlobalLeaderboardEntry struct {
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	DisplayName        string             `bson:"displayName" json:"displayName"`
	PhotoURL           string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	TotalPoints        int                `bson:"totalPoints" json:"totalPoints"`
	CorrectPredictions int                `bson:"correctPredictions" json:"correctPredictions"`
	TotalPredictions   int                `bson:"totalPredictions" json:"totalPredictions"`
	Accuracy           float64            `bson:"accuracy" json:"accuracy"`
	MatchesPlayed      int                `bson:"matchesPlayed" json:"matchesPlayed"`
	LastUpdated        time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
