package scoring

import "testing"

func TestEvaluateExactMatch(t *testing.T) {
	def := QuestionDef{Points: 10, Type: TypeWinner}

	if out := Evaluate("teamA", "teamA", def); !out.IsCorrect || out.PointsEarned != 10 {
		t.Errorf("correct winner pick: got %+v", out)
	}
	if out := Evaluate("teamB", "teamA", def); out.IsCorrect || out.PointsEarned != 0 {
		t.Errorf("wrong winner pick with no penalty: got %+v", out)
	}
}

func TestEvaluateHighestTotalTolerance(t *testing.T) {
	def := QuestionDef{Points: 20, Type: TypeHighestTotal}

	tests := []struct {
		guess   string
		actual  string
		correct bool
	}{
		{"300", "300", true},
		{"285", "300", true},  // diff 15, boundary inclusive
		{"315", "300", true},
		{"284", "300", false}, // diff 16
		{"316", "300", false},
		{"three hundred", "300", false}, // non-numeric guess, no throw
		{"300", "n/a", false},           // non-numeric actual
	}

	for _, tt := range tests {
		out := Evaluate(tt.guess, tt.actual, def)
		if out.IsCorrect != tt.correct {
			t.Errorf("Evaluate(%q, %q): IsCorrect = %v, want %v", tt.guess, tt.actual, out.IsCorrect, tt.correct)
		}
	}
}

func TestEvaluatePlayerNameStandardization(t *testing.T) {
	def := QuestionDef{Points: 15, Type: TypeTopBatsman}

	if out := Evaluate("A B de Villiers", "AB de Villiers", def); !out.IsCorrect {
		t.Error("spaced initials should match the joined spelling")
	}
	if out := Evaluate("any-team1", "AB de Villiers", def); out.IsCorrect {
		t.Error("sentinel answer must never match a real player")
	}

	def.Type = TypeTopBowler
	if out := Evaluate("J  Bumrah", "J Bumrah", def); !out.IsCorrect {
		t.Error("whitespace runs should collapse before comparison")
	}
}

func TestEvaluateNegativePoints(t *testing.T) {
	def := QuestionDef{Points: 15, NegativePoints: 5, Type: TypeWinner}

	if out := Evaluate("teamA", "teamA", def); out.PointsEarned != 15 {
		t.Errorf("correct answer: pointsEarned = %d, want 15", out.PointsEarned)
	}
	if out := Evaluate("teamB", "teamA", def); out.PointsEarned != -5 {
		t.Errorf("incorrect answer with penalty: pointsEarned = %d, want -5", out.PointsEarned)
	}

	def.NegativePoints = 0
	if out := Evaluate("teamB", "teamA", def); out.PointsEarned != 0 {
		t.Errorf("incorrect answer without penalty: pointsEarned = %d, want 0", out.PointsEarned)
	}
}

func TestEvaluateUnknownTypeFallsBackToExactMatch(t *testing.T) {
	def := QuestionDef{Points: DefaultPoints, Type: TypeUnknown}

	if out := Evaluate("42", "42", def); !out.IsCorrect || out.PointsEarned != DefaultPoints {
		t.Errorf("unknown type exact match: got %+v", out)
	}
	if out := Evaluate("42", "43", def); out.IsCorrect {
		t.Errorf("unknown type mismatch: got %+v", out)
	}
}
