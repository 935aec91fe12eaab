package entity

import (
	"strings"

	"campaignwiki/internal/attrs"
)

// Status tones understood by renderers.
const (
	ToneActive  = "active"
	ToneSuccess = "success"
	ToneDanger  = "danger"
	ToneMuted   = "muted"
	ToneNeutral = "neutral"
)

// StatusInfo is the display classification of an entity's status.
type StatusInfo struct {
	Raw       string `json:"raw"`
	Display   string `json:"display"`
	Rank      int    `json:"rank"`
	Icon      string `json:"icon"`
	Tone      string `json:"tone"`
	Dead      bool   `json:"dead"`
	Failed    bool   `json:"failed"`
	Completed bool   `json:"completed"`
}

var (
	questActiveTerms    = []string{"active", "in progress", "started"}
	questCompletedTerms = []string{"completed", "finished", "done", "success"}
	questFailedTerms    = []string{"failed", "failure"}
	questHeldTerms      = []string{"abandoned", "on-hold", "paused"}
)

// Status classifies rec. A known affinity overrides the status for display
// and ranking.
func (r *Ranks) Status(rec Record) StatusInfo {
	raw := rec.Status
	if raw == "" {
		raw = attrs.String(rec.Attributes, "status")
	}
	affinity := attrs.String(rec.Attributes, "affinity")

	display := raw
	if affinity != "" && affinity != "unknown" {
		display = affinity
	}
	lower := strings.ToLower(display)

	info := StatusInfo{
		Raw:       raw,
		Display:   display,
		Rank:      r.Rank(display),
		Dead:      lower == "dead",
		Failed:    lower == "failed",
		Completed: containsAny(lower, questCompletedTerms),
	}
	info.Icon, info.Tone = r.statusIcon(lower, NormalizeType(rec.Type))
	return info
}

func (r *Ranks) statusIcon(status, typ string) (string, string) {
	if status == "" {
		status = "unknown"
	}
	if typ == TypeQuest {
		switch {
		case containsAny(status, questActiveTerms):
			return "circle", ToneActive
		case containsAny(status, questCompletedTerms):
			return "check-circle-2", ToneSuccess
		case containsAny(status, questFailedTerms):
			return "x-circle", ToneDanger
		case containsAny(status, questHeldTerms):
			return "clock", ToneMuted
		default:
			return "circle", ToneMuted
		}
	}

	switch r.Rank(status) {
	case RankEnemies:
		return "sword", ToneDanger
	case RankAllies:
		return "shield", ToneSuccess
	default:
		return "circle", ToneNeutral
	}
}

func containsAny(value string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(value, term) {
			return true
		}
	}
	return false
}
