package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a player account. The aggregate fields are mutated only by
// evaluation ($inc), reset ($inc with negative amounts, floored at zero) and
// the weekly rollover (weeklyPoints back to zero).
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email              string             `bson:"email" json:"email"`
	DisplayName        string             `bson:"displayName" json:"displayName"`
	PhotoURL           string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	FavouriteTeam      string             `bson:"favouriteTeam,omitempty" json:"favouriteTeam,omitempty"`
	TotalPoints        int                `bson:"totalPoints" json:"totalPoints"`
	WeeklyPoints       int                `bson:"weeklyPoints" json:"weeklyPoints"`
	TotalPredictions   int                `bson:"totalPredictions" json:"totalPredictions"`
	CorrectPredictions int                `bson:"correctPredictions" json:"correctPredictions"`
	OverallAccuracy    float64            `bson:"overallAccuracy" json:"overallAccuracy"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
