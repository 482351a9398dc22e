package scoring

import "testing"

func TestStandardizeQuestionKey(t *testing.T) {
	tests := []struct {
		rawKey  string
		matchID string
		want    string
	}{
		{"winner", "match1", "winner"},
		{"match-winner", "match1", "winner"},
		{"match1-winner-question", "match1", "winner"},
		{"winner-question", "match1", "winner"},
		{"match1-top-batsman", "match1", "top-batsman"},
		{"topBatsman", "match1", "top-batsman"},
		{"best-bowler-question", "match1", "top-bowler"},
		{"match1-highest-total-question", "match1", "highest-total"},
		{"highestTotal", "match1", "highest-total"},
		{"moresixes", "match1", "more-sixes"},
		{"more-sixes", "match1", "more-sixes"},
		{"MATCH1-MORE-SIXES", "match1", "more-sixes"},
		// Unrecognized keys pass through case-folded.
		{"Custom-Tiebreaker", "match1", "custom-tiebreaker"},
		{"match1-poll-of-the-day", "match1", "poll-of-the-day"},
	}

	for _, tt := range tests {
		got := StandardizeQuestionKey(tt.rawKey, tt.matchID)
		if got != tt.want {
			t.Errorf("StandardizeQuestionKey(%q, %q) = %q, want %q", tt.rawKey, tt.matchID, got, tt.want)
		}
	}
}

func TestStandardizePlayerName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"AB de Villiers", "AB de Villiers"},
		{"A B de Villiers", "AB de Villiers"},
		{"  Virat   Kohli ", "Virat Kohli"},
		{"M S Dhoni", "MS Dhoni"},
		{"MS Dhoni", "MS Dhoni"},
		{"Rohit Sharma", "Rohit Sharma"},
		// Sentinels pass through untouched.
		{"any-team1", "any-team1"},
		{"no-answer", "no-answer"},
		{"", ""},
	}

	for _, tt := range tests {
		got := StandardizePlayerName(tt.raw)
		if got != tt.want {
			t.Errorf("StandardizePlayerName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStandardizePlayerNameRoundTrip(t *testing.T) {
	// Historically the UI stored initials both with and without internal
	// spacing; both spellings must compare equal after standardization.
	if StandardizePlayerName("A B de Villiers") != StandardizePlayerName("AB de Villiers") {
		t.Error("spaced and joined initials should standardize to the same name")
	}
}
