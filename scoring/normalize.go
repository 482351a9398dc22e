package scoring

import (
	"strings"
	"unicode"
)

// Canonical question keys. Every historical key format a prediction answer or
// result record may carry is folded onto one of these before any lookup.
const (
	KeyWinner       = "winner"
	KeyTopBatsman   = "top-batsman"
	KeyTopBowler    = "top-bowler"
	KeyHighestTotal = "highest-total"
	KeyMoreSixes    = "more-sixes"
)

// CanonicalKey maps a question type onto its canonical result key, or ""
// for types that have no fixed key (custom, total-sixes, unknown).
func CanonicalKey(t QuestionType) string {
	switch t {
	case TypeWinner:
		return KeyWinner
	case TypeTopBatsman:
		return KeyTopBatsman
	case TypeTopBowler:
		return KeyTopBowler
	case TypeHighestTotal:
		return KeyHighestTotal
	case TypeMoreSixes:
		return KeyMoreSixes
	}
	return ""
}

// StandardizeQuestionKey canonicalizes a free-form question identifier.
// It strips a "<matchId>-" prefix and a trailing "-question" suffix, then
// maps known substrings onto the canonical key set. Unrecognized keys pass
// through case-folded so legacy formats still hit the results map as-is.
func StandardizeQuestionKey(rawKey, matchID string) string {
	key := strings.ToLower(strings.TrimSpace(rawKey))

	if matchID != "" {
		key = strings.TrimPrefix(key, strings.ToLower(matchID)+"-")
	}
	key = strings.TrimSuffix(key, "-question")

	switch {
	case strings.Contains(key, "batsman"):
		return KeyTopBatsman
	case strings.Contains(key, "bowler"):
		return KeyTopBowler
	case strings.Contains(key, "highest-total"), strings.Contains(key, "highesttotal"):
		return KeyHighestTotal
	case strings.Contains(key, "more-sixes"), strings.Contains(key, "moresixes"):
		return KeyMoreSixes
	case strings.Contains(key, "winner"):
		// Covers both "winner" and "match-winner" variants.
		return KeyWinner
	}

	return key
}

// StandardizePlayerName normalizes a player name so that historically
// inconsistent entries compare equal: whitespace is trimmed, internal runs
// collapse to one space, and runs of single capital-letter initials are
// joined ("A B de Villiers" -> "AB de Villiers").
//
// Sentinel values ("any-team1", "no-answer", ...) are placeholders, not real
// names, and are returned untouched so they never match a real player.
func StandardizePlayerName(raw string) string {
	if isSentinelValue(raw) {
		return raw
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}

	var out []string
	for i := 0; i < len(fields); i++ {
		if !isInitial(fields[i]) {
			out = append(out, fields[i])
			continue
		}
		// Collect the whole run of initials and join it into one token.
		run := fields[i]
		for i+1 < len(fields) && isInitial(fields[i+1]) {
			i++
			run += fields[i]
		}
		out = append(out, run)
	}

	return strings.Join(out, " ")
}

func isSentinelValue(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "any-") || strings.HasPrefix(s, "no-")
}

func isInitial(token string) bool {
	runes := []rune(token)
	return len(runes) == 1 && unicode.IsUpper(runes[0])
}
