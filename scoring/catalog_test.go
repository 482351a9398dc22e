package scoring

import (
	"testing"

	"crickpick/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildCatalogLookupStyles(t *testing.T) {
	id := primitive.NewObjectID()
	catalog := BuildCatalog([]models.Question{
		{ID: id, Type: "topBatsman", Points: 15, NegativePoints: 5},
		{ID: primitive.NewObjectID(), Type: "winner", Points: 10},
	})

	// Document id, type, and lowercased type must all resolve identically.
	for _, key := range []string{id.Hex(), "topBatsman", "topbatsman"} {
		def := catalog.Lookup(key)
		if def.Points != 15 || def.NegativePoints != 5 || def.Type != TypeTopBatsman {
			t.Errorf("Lookup(%q) = %+v", key, def)
		}
	}

	if def := catalog.Lookup("winner"); def.Type != TypeWinner || def.Points != 10 {
		t.Errorf("Lookup(winner) = %+v", def)
	}

	// Legacy composite keys fold onto the canonical key of the same type.
	if def := catalog.Lookup("m1-top-batsman-question"); def.Type != TypeTopBatsman || def.Points != 15 {
		t.Errorf("Lookup(m1-top-batsman-question) = %+v", def)
	}
}

func TestCatalogLookupDefault(t *testing.T) {
	catalog := BuildCatalog(nil)

	def := catalog.Lookup("missing-question")
	if def.Points != DefaultPoints {
		t.Errorf("default points = %d, want %d", def.Points, DefaultPoints)
	}
	if def.Type != TypeUnknown {
		t.Errorf("default type = %v, want TypeUnknown", def.Type)
	}
	if def.NegativePoints != 0 {
		t.Errorf("default negativePoints = %d, want 0", def.NegativePoints)
	}
}

func TestQuestionTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
	}{
		{"winner", TypeWinner},
		{"topBatsman", TypeTopBatsman},
		{"top-bowler", TypeTopBowler},
		{"highestTotal", TypeHighestTotal},
		{"moreSixes", TypeMoreSixes},
		{"totalSixes", TypeTotalSixes},
		{"custom", TypeCustom},
		{"something-else", TypeUnknown},
		{"", TypeUnknown},
	}

	for _, tt := range tests {
		if got := QuestionTypeFromString(tt.in); got != tt.want {
			t.Errorf("QuestionTypeFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
