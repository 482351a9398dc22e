package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionOption is a selectable answer shown to the user
type QuestionOption struct {
	ID    string `bson:"id" json:"id"`
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

// Question defines one scoreable question for a match cycle. Treated as
// immutable while an evaluation pass references it; editable between cycles.
type Question struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Text           string             `bson:"text" json:"text"`
	Type           string             `bson:"type" json:"type"` // "winner", "topBatsman", "topBowler", "highestTotal", "moreSixes", "totalSixes", "custom"
	Points         int                `bson:"points" json:"points"`
	NegativePoints int                `bson:"negativePoints" json:"negativePoints"` // penalty magnitude, 0 disables penalties
	Options        []QuestionOption   `bson:"options,omitempty" json:"options,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
