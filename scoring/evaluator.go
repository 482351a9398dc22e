package scoring

import "strconv"

// RunTolerance is the inclusive margin, in runs, within which a highest-total
// guess still counts as correct.
const RunTolerance = 15

// Outcome is the scored result for a single prediction answer.
type Outcome struct {
	IsCorrect    bool
	PointsEarned int
}

// Evaluate scores one answer against the resolved correct answer using the
// question type's comparison rule. Unscored answers (no resolvable correct
// answer) must not reach this function.
func Evaluate(answer, correctAnswer string, def QuestionDef) Outcome {
	var correct bool
	switch def.Type {
	case TypeHighestTotal:
		correct = withinRunTolerance(answer, correctAnswer)
	case TypeTopBatsman, TypeTopBowler:
		correct = StandardizePlayerName(answer) == StandardizePlayerName(correctAnswer)
	default:
		// Winner, more-sixes, total-sixes, custom and unknown types all
		// score by exact match.
		correct = answer == correctAnswer
	}

	return Outcome{IsCorrect: correct, PointsEarned: points(correct, def)}
}

func points(correct bool, def QuestionDef) int {
	if correct {
		return def.Points
	}
	if def.NegativePoints > 0 {
		return -def.NegativePoints
	}
	return 0
}

// withinRunTolerance parses both sides as integers and checks the guess is
// within RunTolerance runs of the actual total. Non-numeric input on either
// side is simply not correct.
func withinRunTolerance(answer, correctAnswer string) bool {
	guess, err := strconv.Atoi(answer)
	if err != nil {
		return false
	}
	actual, err := strconv.Atoi(correctAnswer)
	if err != nil {
		return false
	}
	diff := guess - actual
	if diff < 0 {
		diff = -diff
	}
	return diff <= RunTolerance
}
