package scoring

import (
	"testing"

	"crickpick/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRescoreDeltaFirstPass(t *testing.T) {
	answer := models.PredictionAnswer{}

	delta := RescoreDelta(answer, Outcome{IsCorrect: true, PointsEarned: 10})
	if delta.Points != 10 || delta.Correct != 1 || delta.Total != 1 {
		t.Errorf("first pass on correct answer: got %+v", delta)
	}

	delta = RescoreDelta(answer, Outcome{IsCorrect: false, PointsEarned: -5})
	if delta.Points != -5 || delta.Correct != 0 || delta.Total != 1 {
		t.Errorf("first pass on penalized answer: got %+v", delta)
	}
}

func TestRescoreDeltaUnchangedRerunIsZero(t *testing.T) {
	tests := []struct {
		name    string
		prior   models.PredictionAnswer
		outcome Outcome
	}{
		{
			"correct answer rescored identically",
			models.PredictionAnswer{IsCorrect: boolPtr(true), PointsEarned: intPtr(10)},
			Outcome{IsCorrect: true, PointsEarned: 10},
		},
		{
			"incorrect answer rescored identically",
			models.PredictionAnswer{IsCorrect: boolPtr(false), PointsEarned: intPtr(0)},
			Outcome{IsCorrect: false, PointsEarned: 0},
		},
		{
			"penalized answer rescored identically",
			models.PredictionAnswer{IsCorrect: boolPtr(false), PointsEarned: intPtr(-5)},
			Outcome{IsCorrect: false, PointsEarned: -5},
		},
	}

	for _, tt := range tests {
		if delta := RescoreDelta(tt.prior, tt.outcome); !delta.IsZero() {
			t.Errorf("%s: got %+v, want zero delta", tt.name, delta)
		}
	}
}

func TestRescoreDeltaChangedResult(t *testing.T) {
	// A corrected result flips a previously-correct answer to wrong with a
	// penalty: the delta must back out the old 10 and apply the new -5.
	prior := models.PredictionAnswer{IsCorrect: boolPtr(true), PointsEarned: intPtr(10)}
	delta := RescoreDelta(prior, Outcome{IsCorrect: false, PointsEarned: -5})
	if delta.Points != -15 || delta.Correct != -1 || delta.Total != 0 {
		t.Errorf("correct-to-penalized rescore: got %+v", delta)
	}

	// And the other direction: a wrong answer becomes correct.
	prior = models.PredictionAnswer{IsCorrect: boolPtr(false), PointsEarned: intPtr(0)}
	delta = RescoreDelta(prior, Outcome{IsCorrect: true, PointsEarned: 10})
	if delta.Points != 10 || delta.Correct != 1 || delta.Total != 0 {
		t.Errorf("wrong-to-correct rescore: got %+v", delta)
	}
}

func TestReversalDeltasAccumulatePerUser(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	answers := []models.PredictionAnswer{
		{UserID: alice, IsCorrect: boolPtr(true), PointsEarned: intPtr(10)},
		{UserID: alice, IsCorrect: boolPtr(false), PointsEarned: intPtr(-5)},
		{UserID: bob, IsCorrect: boolPtr(true), PointsEarned: intPtr(20)},
		// Never evaluated: contributed nothing, so nothing to reverse.
		{UserID: bob},
	}

	reversals := ReversalDeltas(answers)
	if len(reversals) != 2 {
		t.Fatalf("got %d users, want 2", len(reversals))
	}
	if d := reversals[alice]; d.Points != 5 || d.Correct != 1 || d.Total != 2 {
		t.Errorf("alice reversal: got %+v", d)
	}
	if d := reversals[bob]; d.Points != 20 || d.Correct != 1 || d.Total != 1 {
		t.Errorf("bob reversal: got %+v", d)
	}
}

func TestReversalDeltasSkipUnevaluated(t *testing.T) {
	answers := []models.PredictionAnswer{
		{UserID: primitive.NewObjectID()},
		{UserID: primitive.NewObjectID()},
	}
	if reversals := ReversalDeltas(answers); len(reversals) != 0 {
		t.Errorf("unevaluated answers must not produce reversals: got %v", reversals)
	}
}
