package scoring

import (
	"crickpick/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AggregateDelta is a net movement of one user's running aggregates. It is
// always relative: a first evaluation moves by the full outcome, a
// re-evaluation by the difference against what a previous pass already
// applied, a reversal by the previous contribution itself.
type AggregateDelta struct {
	Points  int
	Correct int
	Total   int
}

// Add returns the combined movement of two deltas.
func (d AggregateDelta) Add(o AggregateDelta) AggregateDelta {
	return AggregateDelta{
		Points:  d.Points + o.Points,
		Correct: d.Correct + o.Correct,
		Total:   d.Total + o.Total,
	}
}

// IsZero reports whether applying the delta would change nothing.
func (d AggregateDelta) IsZero() bool {
	return d.Points == 0 && d.Correct == 0 && d.Total == 0
}

// RescoreDelta computes the aggregate movement from scoring one answer. The
// answer document carries whatever a previous pass persisted; that prior
// contribution is cancelled out, so re-running a pass over unchanged data
// yields a zero delta and never double counts.
func RescoreDelta(answer models.PredictionAnswer, outcome Outcome) AggregateDelta {
	delta := AggregateDelta{Points: outcome.PointsEarned, Total: 1}
	if outcome.IsCorrect {
		delta.Correct = 1
	}
	if answer.PointsEarned != nil {
		delta.Points -= *answer.PointsEarned
		delta.Total--
		if answer.IsCorrect != nil && *answer.IsCorrect {
			delta.Correct--
		}
	}
	return delta
}

// ReversalDeltas accumulates, per user, exactly the contribution previous
// evaluation passes applied for these answers. Unevaluated answers never
// touched any aggregate and contribute nothing to the reversal.
func ReversalDeltas(answers []models.PredictionAnswer) map[primitive.ObjectID]AggregateDelta {
	reversals := make(map[primitive.ObjectID]AggregateDelta)
	for _, answer := range answers {
		if answer.PointsEarned == nil {
			continue
		}
		delta := AggregateDelta{Points: *answer.PointsEarned, Total: 1}
		if answer.IsCorrect != nil && *answer.IsCorrect {
			delta.Correct = 1
		}
		reversals[answer.UserID] = reversals[answer.UserID].Add(delta)
	}
	return reversals
}
