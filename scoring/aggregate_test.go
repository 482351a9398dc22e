package scoring

import (
	"testing"

	"crickpick/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserTotalsAdd(t *testing.T) {
	var totals UserTotals
	totals.Add(Outcome{IsCorrect: true, PointsEarned: 15})
	totals.Add(Outcome{IsCorrect: false, PointsEarned: -5})
	totals.Add(Outcome{IsCorrect: false, PointsEarned: 0})

	// Every scored answer moves points (penalties included) and counts
	// toward the total; only right answers count as correct.
	if totals.Points != 10 {
		t.Errorf("Points = %d, want 10", totals.Points)
	}
	if totals.Correct != 1 {
		t.Errorf("Correct = %d, want 1", totals.Correct)
	}
	if totals.Total != 3 {
		t.Errorf("Total = %d, want 3", totals.Total)
	}
}

func TestUserTotalsAccuracy(t *testing.T) {
	var totals UserTotals
	if totals.Accuracy() != 0 {
		t.Errorf("empty accuracy = %v, want 0", totals.Accuracy())
	}

	totals.Add(Outcome{IsCorrect: true, PointsEarned: 10})
	totals.Add(Outcome{IsCorrect: false, PointsEarned: 0})
	if got := totals.Accuracy(); got != 50 {
		t.Errorf("accuracy = %v, want 50", got)
	}
}

func TestMatchTotalsGroupsByUser(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	m := make(MatchTotals)
	m.Add(alice, Outcome{IsCorrect: true, PointsEarned: 10})
	m.Add(alice, Outcome{IsCorrect: false, PointsEarned: -5})
	m.Add(bob, Outcome{IsCorrect: true, PointsEarned: 20})

	if m[alice].Points != 5 || m[alice].Total != 2 || m[alice].Correct != 1 {
		t.Errorf("alice totals = %+v", *m[alice])
	}
	if m[bob].Points != 20 || m[bob].Total != 1 || m[bob].Correct != 1 {
		t.Errorf("bob totals = %+v", *m[bob])
	}
}

func TestGlobalTotalsSkipsUnevaluated(t *testing.T) {
	yes := true
	no := false
	ten := 10
	minusFive := -5

	answers := []models.PredictionAnswer{
		{MatchID: "m1", IsCorrect: &yes, PointsEarned: &ten},
		{MatchID: "m1", IsCorrect: &no, PointsEarned: &minusFive},
		{MatchID: "m2", IsCorrect: &yes, PointsEarned: &ten},
		{MatchID: "m3"}, // not yet evaluated, must not count
	}

	totals, matchesPlayed := GlobalTotals(answers)
	if totals.Points != 15 {
		t.Errorf("Points = %d, want 15", totals.Points)
	}
	if totals.Total != 3 {
		t.Errorf("Total = %d, want 3", totals.Total)
	}
	if totals.Correct != 2 {
		t.Errorf("Correct = %d, want 2", totals.Correct)
	}
	if matchesPlayed != 2 {
		t.Errorf("matchesPlayed = %d, want 2", matchesPlayed)
	}
}
