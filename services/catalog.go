package services

import (
	"context"
	"fmt"

	"crickpick/db"
	"crickpick/models"
	"crickpick/scoring"

	"go.mongodb.org/mongo-driver/bson"
)

// LoadCatalog reads every question definition once per evaluation run.
// Inactive questions stay in the catalog so answers recorded against retired
// questions still score with their original point values.
func LoadCatalog(ctx context.Context) (scoring.Catalog, error) {
	collection := db.GetCollection(db.QuestionsCollection)

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to load question catalog: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode question catalog: %w", err)
	}

	return scoring.BuildCatalog(questions), nil
}
