package utils

import (
	"context"
	"log"
	"time"

	"crickpick/db"
	"crickpick/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SeedDefaultQuestions inserts the standard question set on first boot so a
// fresh deployment can accept predictions immediately. Existing questions
// are left alone.
func SeedDefaultQuestions() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.GetCollection(db.QuestionsCollection)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Failed to count questions, skipping seed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	questions := []interface{}{
		models.Question{
			Text:      "Who will win the match?",
			Type:      "winner",
			Points:    10,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Question{
			Text:      "Who will be the top batsman?",
			Type:      "topBatsman",
			Points:    15,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Question{
			Text:      "Who will be the top bowler?",
			Type:      "topBowler",
			Points:    15,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Question{
			Text:      "What will be the highest innings total?",
			Type:      "highestTotal",
			Points:    20,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Question{
			Text:      "Which team will hit more sixes?",
			Type:      "moreSixes",
			Points:    10,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if _, err := collection.InsertMany(ctx, questions); err != nil {
		log.Printf("Failed to seed default questions: %v", err)
		return
	}
	log.Printf("Seeded %d default questions", len(questions))
}
