package tooltip

import "campaignwiki/internal/entity"

// Virtual fields computed from other attributes.
const (
	fieldLevelPrefix           = "level_prefix"
	fieldSessionNumberPrefixed = "session_number_prefixed"
)

type Features struct {
	HP          bool
	ArmorClass  bool
	Movement    bool
	Personality bool
	Ruler       bool
}

// Profile lists the attributes a tooltip shows for one entity type.
type Profile struct {
	Subtitle []string
	Tags     []string
	Features Features
}

var profiles = map[string]Profile{
	entity.TypeCharacter: {
		Subtitle: []string{fieldLevelPrefix, "race", "class"},
		Tags:     []string{"status"},
		Features: Features{HP: true, ArmorClass: true, Movement: true},
	},
	entity.TypeNPC: {
		Subtitle: []string{"gender", "race", "role"},
		Tags:     []string{"status", "affinity"},
		Features: Features{Personality: true},
	},
	entity.TypeLocation: {
		Subtitle: []string{"type", "parent_location"},
		Features: Features{Ruler: true},
	},
	entity.TypeQuest: {
		Subtitle: []string{"quest type"},
		Tags:     []string{"status", "priority"},
	},
	entity.TypeEncounter: {
		Subtitle: []string{"status"},
	},
	entity.TypeFaction: {
		Subtitle: []string{"affinity"},
	},
	entity.TypeSession: {
		Subtitle: []string{fieldSessionNumberPrefixed, "session_date"},
	},
}

var defaultProfile = Profile{Subtitle: []string{"type"}}

func ProfileFor(typ string) Profile {
	if profile, ok := profiles[entity.NormalizeType(typ)]; ok {
		return profile
	}
	return defaultProfile
}
