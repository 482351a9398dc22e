package scoring

import (
	"testing"

	"crickpick/models"
)

func TestResolveCorrectAnswerPrecedence(t *testing.T) {
	// The match-scoped key must win over the bare standard key: candidates
	// are tried in order and the first hit is taken.
	result := &models.MatchResult{
		MatchID: "match1",
		PredictionResults: map[string]string{
			"winner":        "teamA",
			"match1-winner": "teamB",
		},
	}

	answer, ok := ResolveCorrectAnswer(result, "winner-question", "match1")
	if !ok {
		t.Fatal("expected the winner question to resolve")
	}
	if answer != "teamB" {
		t.Errorf("resolved %q, want %q (match-scoped key tried first)", answer, "teamB")
	}
}

func TestResolveCorrectAnswerKeyFormats(t *testing.T) {
	result := &models.MatchResult{
		MatchID: "m42",
		PredictionResults: map[string]string{
			"top-batsman":  "V Kohli",
			"moreSixes":    "team2",
			"highesttotal": "287",
		},
	}

	tests := []struct {
		questionID string
		want       string
	}{
		{"m42-top-batsman-question", "V Kohli"},
		{"topBatsman", "V Kohli"},
		{"more-sixes", "team2"},       // legacy "moreSixes" variant
		{"m42-highest-total", "287"},  // hyphen-stripped candidate
	}

	for _, tt := range tests {
		got, ok := ResolveCorrectAnswer(result, tt.questionID, "m42")
		if !ok {
			t.Errorf("ResolveCorrectAnswer(%q): expected resolution", tt.questionID)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveCorrectAnswer(%q) = %q, want %q", tt.questionID, got, tt.want)
		}
	}
}

func TestResolveCorrectAnswerFieldFallback(t *testing.T) {
	result := &models.MatchResult{
		MatchID:      "m7",
		Winner:       "India",
		TopBatsmanID: "Rohit Sharma",
		TopBowlerID:  "J Bumrah",
		HighestTotal: 312,
		MoreSixes:    "team1",
	}

	tests := []struct {
		questionID string
		want       string
	}{
		{"winner-question", "India"},
		{"m7-top-batsman", "Rohit Sharma"},
		{"top-bowler", "J Bumrah"},
		{"highest-total", "312"},
		{"more-sixes", "team1"},
	}

	for _, tt := range tests {
		got, ok := ResolveCorrectAnswer(result, tt.questionID, "m7")
		if !ok {
			t.Errorf("ResolveCorrectAnswer(%q): expected field fallback to resolve", tt.questionID)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveCorrectAnswer(%q) = %q, want %q", tt.questionID, got, tt.want)
		}
	}
}

func TestResolveForQuestionTriesRawIDBeforeCanonicalKey(t *testing.T) {
	questionID := "665f1c2aabbccdd001231234"
	def := QuestionDef{Points: 10, Type: TypeWinner}

	// Results keyed by the question's document id must resolve through the
	// raw id candidate even when the type has a canonical key of its own.
	result := &models.MatchResult{
		MatchID: "m1",
		PredictionResults: map[string]string{
			questionID: "teamA",
			"winner":   "teamB",
		},
	}

	got, ok := ResolveForQuestion(result, questionID, "m1", def)
	if !ok {
		t.Fatal("expected the document-id key to resolve")
	}
	if got != "teamA" {
		t.Errorf("resolved %q, want %q (raw id key tried before canonical)", got, "teamA")
	}
}

func TestResolveForQuestionFallsBackToCanonicalKey(t *testing.T) {
	def := QuestionDef{Points: 10, Type: TypeWinner}

	// The raw id misses, so the question type's canonical key takes over.
	result := &models.MatchResult{
		MatchID:           "m1",
		PredictionResults: map[string]string{"winner": "teamB"},
	}

	got, ok := ResolveForQuestion(result, "665f1c2aabbccdd001231234", "m1", def)
	if !ok {
		t.Fatal("expected canonical-key fallback to resolve")
	}
	if got != "teamB" {
		t.Errorf("resolved %q, want %q", got, "teamB")
	}

	// Unknown types have no canonical key; an unresolvable id stays unscored.
	if _, ok := ResolveForQuestion(result, "665f1c2aabbccdd001231234", "m1", QuestionDef{Type: TypeUnknown}); ok {
		t.Error("expected unknown-type answer with unresolvable id to stay unscored")
	}
}

func TestResolveCorrectAnswerUnresolved(t *testing.T) {
	result := &models.MatchResult{
		MatchID:           "m7",
		PredictionResults: map[string]string{"winner": "India"},
	}

	// Unknown custom question with no map entry and no direct field.
	if _, ok := ResolveCorrectAnswer(result, "player-of-the-match", "m7"); ok {
		t.Error("expected unresolvable question to stay unscored")
	}

	// Empty map values are not hits.
	result.PredictionResults["m7-custom"] = ""
	if _, ok := ResolveCorrectAnswer(result, "custom", "m7"); ok {
		t.Error("expected empty result value to stay unscored")
	}

	if _, ok := ResolveCorrectAnswer(nil, "winner", "m7"); ok {
		t.Error("expected nil result to stay unscored")
	}
}
