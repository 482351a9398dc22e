package scoring

import (
	"strings"

	"crickpick/models"
)

// DefaultPoints is awarded for a correct answer whose question definition is
// missing from the catalog. Scoring is best effort: an incomplete catalog
// degrades to this default instead of failing the whole pass.
const DefaultPoints = 10

// QuestionType is the closed set of scoring rules.
type QuestionType int

const (
	TypeUnknown QuestionType = iota
	TypeWinner
	TypeTopBatsman
	TypeTopBowler
	TypeHighestTotal
	TypeMoreSixes
	TypeTotalSixes
	TypeCustom
)

func (t QuestionType) String() string {
	switch t {
	case TypeWinner:
		return "winner"
	case TypeTopBatsman:
		return "topBatsman"
	case TypeTopBowler:
		return "topBowler"
	case TypeHighestTotal:
		return "highestTotal"
	case TypeMoreSixes:
		return "moreSixes"
	case TypeTotalSixes:
		return "totalSixes"
	case TypeCustom:
		return "custom"
	}
	return "unknown"
}

// QuestionTypeFromString folds a stored type string onto the enum. Anything
// unrecognized becomes TypeUnknown, which scores by exact match.
func QuestionTypeFromString(s string) QuestionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "winner", "match-winner", "matchwinner":
		return TypeWinner
	case "topbatsman", "top-batsman":
		return TypeTopBatsman
	case "topbowler", "top-bowler":
		return TypeTopBowler
	case "highesttotal", "highest-total":
		return TypeHighestTotal
	case "moresixes", "more-sixes":
		return TypeMoreSixes
	case "totalsixes", "total-sixes":
		return TypeTotalSixes
	case "custom":
		return TypeCustom
	}
	return TypeUnknown
}

// QuestionDef is the slice of a question the evaluator needs.
type QuestionDef struct {
	Points         int
	NegativePoints int
	Type           QuestionType
}

// Catalog maps lookup keys to question definitions. Each question is indexed
// under its document id, its type string, and the lowercase of its type, so
// every lookup style used across stored answers resolves to the same def.
type Catalog map[string]QuestionDef

// BuildCatalog indexes question documents for one evaluation run.
func BuildCatalog(questions []models.Question) Catalog {
	catalog := make(Catalog, len(questions)*3)
	for _, q := range questions {
		def := QuestionDef{
			Points:         q.Points,
			NegativePoints: q.NegativePoints,
			Type:           QuestionTypeFromString(q.Type),
		}
		if def.Points <= 0 {
			def.Points = DefaultPoints
		}
		if !q.ID.IsZero() {
			catalog[q.ID.Hex()] = def
		}
		if q.Type != "" {
			catalog[q.Type] = def
			catalog[strings.ToLower(q.Type)] = def
			catalog[StandardizeQuestionKey(q.Type, "")] = def
		}
	}
	return catalog
}

// Lookup resolves a question definition, falling back to a best-effort
// default when the catalog has no entry for the key.
func (c Catalog) Lookup(key string) QuestionDef {
	if def, ok := c[key]; ok {
		return def
	}
	if def, ok := c[strings.ToLower(key)]; ok {
		return def
	}
	// Legacy answers reference questions by composite string keys rather
	// than document ids; fold those onto the canonical key before giving up.
	if def, ok := c[StandardizeQuestionKey(key, "")]; ok {
		return def
	}
	return QuestionDef{Points: DefaultPoints, Type: TypeUnknown}
}
