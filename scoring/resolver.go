package scoring

import (
	"strconv"
	"strings"

	"crickpick/models"
)

// Older result records stored correct answers under several key spellings.
// These variants are appended to the candidate list after the exact keys.
var keyVariants = map[string][]string{
	KeyWinner:       {"match-winner", "matchwinner"},
	KeyTopBatsman:   {"topBatsman", "batsman"},
	KeyTopBowler:    {"topBowler", "bowler"},
	KeyHighestTotal: {"highestTotal"},
	KeyMoreSixes:    {"moreSixes"},
}

// ResolveCorrectAnswer finds the authoritative answer for a question on a
// match result. It normalizes the question id, tries predictionResults with
// an ordered list of candidate keys (first match wins), and finally falls
// back to the direct result fields. ok is false when nothing resolves; such
// answers are unscored, which is distinct from being wrong.
func ResolveCorrectAnswer(result *models.MatchResult, questionID, matchID string) (answer string, ok bool) {
	if result == nil {
		return "", false
	}

	standardKey := StandardizeQuestionKey(questionID, matchID)

	candidates := []string{
		matchID + "-" + standardKey,
		standardKey,
		questionID,
		strings.ToLower(questionID),
	}
	candidates = append(candidates, keyVariants[standardKey]...)
	candidates = append(candidates, strings.ReplaceAll(standardKey, "-", ""))

	seen := make(map[string]struct{}, len(candidates))
	for _, key := range candidates {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if value, hit := result.PredictionResults[key]; hit && value != "" {
			return value, true
		}
	}

	return resolveFromFields(result, standardKey)
}

// ResolveForQuestion resolves the correct answer for one stored prediction
// answer. The answer's own question id is tried first, so results keyed by
// document id or any legacy spelling win; only when that fails does the
// question type's canonical key get a turn. Answers that reference questions
// by document id would otherwise never reach the typed result keys.
func ResolveForQuestion(result *models.MatchResult, questionID, matchID string, def QuestionDef) (string, bool) {
	if answer, ok := ResolveCorrectAnswer(result, questionID, matchID); ok {
		return answer, true
	}
	if canonical := CanonicalKey(def.Type); canonical != "" && canonical != questionID {
		return ResolveCorrectAnswer(result, canonical, matchID)
	}
	return "", false
}

// resolveFromFields reads the correct answer off the result document itself
// when the predictionResults map has no usable key.
func resolveFromFields(result *models.MatchResult, standardKey string) (string, bool) {
	switch standardKey {
	case KeyWinner:
		if result.Winner != "" {
			return result.Winner, true
		}
	case KeyTopBatsman:
		if result.TopBatsmanID != "" {
			return result.TopBatsmanID, true
		}
	case KeyTopBowler:
		if result.TopBowlerID != "" {
			return result.TopBowlerID, true
		}
	case KeyHighestTotal:
		if result.HighestTotal > 0 {
			return strconv.Itoa(result.HighestTotal), true
		}
	case KeyMoreSixes:
		if result.MoreSixes != "" {
			return result.MoreSixes, true
		}
	}
	return "", false
}
