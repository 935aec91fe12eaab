package entity

import (
	"strings"

	"campaignwiki/internal/config"
)

const (
	RankAllies   = 1
	RankNeutral  = 2
	RankEnemies  = 3
	RankFallback = 99
)

// Rank labels, also used as faction group names.
const (
	LabelAllies  = "Allies"
	LabelNeutral = "Neutral"
	LabelEnemies = "Enemies"
	LabelUnknown = "Unknown"
)

var defaultRankTerms = []config.RankTerm{
	{Term: "ally", Rank: RankAllies},
	{Term: "allies", Rank: RankAllies},
	{Term: "friend", Rank: RankAllies},
	{Term: "friendly", Rank: RankAllies},
	{Term: "helpful", Rank: RankAllies},
	{Term: "allied", Rank: RankAllies},
	{Term: "alliance", Rank: RankAllies},
	{Term: "aligned", Rank: RankAllies},
	{Term: "neutral", Rank: RankNeutral},
	{Term: "indifferent", Rank: RankNeutral},
	{Term: "unknown", Rank: RankNeutral},
	{Term: "enemy", Rank: RankEnemies},
	{Term: "enemies", Rank: RankEnemies},
	{Term: "hostile", Rank: RankEnemies},
	{Term: "rival", Rank: RankEnemies},
	{Term: "villain", Rank: RankEnemies},
	{Term: "threat", Rank: RankEnemies},
	{Term: "other", Rank: RankFallback},
}

// Ranks maps a status or affinity string to a sort rank. Terms are matched
// as substrings in order, so "unfriendly" ranks with "friend". Strings that
// match no term get RankFallback.
type Ranks struct {
	terms []config.RankTerm
}

func DefaultRanks() *Ranks {
	return &Ranks{terms: defaultRankTerms}
}

// NewRanks uses the schema's rank terms when it defines any.
func NewRanks(schema *config.Schema) *Ranks {
	if schema == nil || len(schema.Ranks) == 0 {
		return DefaultRanks()
	}
	terms := make([]config.RankTerm, 0, len(schema.Ranks))
	for _, term := range schema.Ranks {
		terms = append(terms, config.RankTerm{Term: strings.ToLower(strings.TrimSpace(term.Term)), Rank: term.Rank})
	}
	return &Ranks{terms: terms}
}

func (r *Ranks) Rank(value string) int {
	terms := defaultRankTerms
	if r != nil && len(r.terms) > 0 {
		terms = r.terms
	}
	key := strings.ToLower(value)
	for _, term := range terms {
		if strings.Contains(key, term.Term) {
			return term.Rank
		}
	}
	return RankFallback
}

func RankLabel(rank int) string {
	switch rank {
	case RankAllies:
		return LabelAllies
	case RankNeutral:
		return LabelNeutral
	case RankEnemies:
		return LabelEnemies
	default:
		return LabelUnknown
	}
}
