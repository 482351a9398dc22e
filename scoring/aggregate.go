package scoring

import (
	"crickpick/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserTotals accumulates one user's scored answers. Points moves by
// PointsEarned for every scored answer, including negative penalties; Correct
// only counts answers that were actually right.
type UserTotals struct {
	Points  int
	Correct int
	Total   int
}

// Add applies one scored outcome.
func (t *UserTotals) Add(o Outcome) {
	t.Points += o.PointsEarned
	t.Total++
	if o.IsCorrect {
		t.Correct++
	}
}

// Accuracy returns the percentage of correct answers, 0 for no answers.
func (t UserTotals) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}

// MatchTotals groups per-answer outcomes by user for one match.
type MatchTotals map[primitive.ObjectID]*UserTotals

// Add records an outcome against its user.
func (m MatchTotals) Add(userID primitive.ObjectID, o Outcome) {
	totals, ok := m[userID]
	if !ok {
		totals = &UserTotals{}
		m[userID] = totals
	}
	totals.Add(o)
}

// GlobalTotals re-derives a user's season aggregates from their complete
// evaluated answer history. Recomputing from source, rather than patching
// increments, keeps the global view consistent across resets and
// re-evaluations. Unevaluated answers are skipped.
func GlobalTotals(answers []models.PredictionAnswer) (totals UserTotals, matchesPlayed int) {
	matches := make(map[string]struct{})
	for _, a := range answers {
		if a.IsCorrect == nil || a.PointsEarned == nil {
			continue
		}
		totals.Add(Outcome{IsCorrect: *a.IsCorrect, PointsEarned: *a.PointsEarned})
		matches[a.MatchID] = struct{}{}
	}
	return totals, len(matches)
}
