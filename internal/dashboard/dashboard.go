// Package dashboard assembles the campaign overview: open quest threads,
// the session timeline grouped by arc, entity counts and the active party.
package dashboard

import (
	"sort"
	"strconv"
	"strings"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/grouping"
	"campaignwiki/internal/store"
	"campaignwiki/internal/viewmodel"
)

const unrankedWeight = 4

var typeWeights = map[string]int{
	"main quest":     1,
	"personal quest": 2,
	"side quest":     3,
}

var priorityWeights = map[string]int{
	"critical": 1,
	"high":     2,
	"medium":   3,
	"normal":   4,
	"low":      5,
}

var closedQuestStatuses = []string{"completed", "success", "failed", "abandoned"}

var inactiveCharacterStatuses = []string{"dead", "deceased", "retired"}

type Session struct {
	viewmodel.ViewModel
	Number int    `json:"number"`
	ArcID  string `json:"arc_id,omitempty"`
}

type Arc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	Sessions    []Session `json:"sessions"`
}

type CurrentArc struct {
	Arc           *Arc      `json:"arc,omitempty"`
	LatestSession *Session  `json:"latest_session,omitempty"`
	Sessions      []Session `json:"sessions"`
}

type Counts struct {
	Sessions   int `json:"sessions"`
	Arcs       int `json:"arcs"`
	Quests     int `json:"quests"`
	NPCs       int `json:"npcs"`
	Locations  int `json:"locations"`
	Encounters int `json:"encounters"`
}

type Dashboard struct {
	Campaign    store.Campaign        `json:"campaign"`
	ActiveParty []viewmodel.ViewModel `json:"active_party"`
	Threads     []viewmodel.ViewModel `json:"threads"`
	Current     CurrentArc            `json:"current_arc"`
	OtherArcs   []Arc                 `json:"other_arcs"`
	Progression []Session             `json:"progression"`
	Counts      Counts                `json:"counts"`
}

// Input is everything Build reads. Counts is keyed by entity type.
type Input struct {
	Campaign   store.Campaign
	Sessions   []entity.Record
	Quests     []entity.Record
	Characters []entity.Record
	Counts     map[string]int
}

func Build(mapper *viewmodel.Mapper, in Input) Dashboard {
	if mapper == nil {
		mapper = viewmodel.New(viewmodel.Options{})
	}

	progression := sessions(mapper, in.Sessions)
	timeline := arcs(in.Campaign.Arcs, progression)

	current := CurrentArc{Sessions: []Session{}}
	others := make([]Arc, 0, len(timeline))
	var currentArcID string
	if len(progression) > 0 {
		latest := progression[0]
		current.LatestSession = &latest
		currentArcID = latest.ArcID
	}
	for i := range timeline {
		if currentArcID != "" && timeline[i].ID == currentArcID {
			arc := timeline[i]
			current.Arc = &arc
			current.Sessions = arc.Sessions
			continue
		}
		others = append(others, timeline[i])
	}

	threads := Threads(mapper, in.Quests)
	if in.Campaign.Arcs == nil {
		in.Campaign.Arcs = []store.Arc{}
	}

	return Dashboard{
		Campaign:    in.Campaign,
		ActiveParty: ActiveParty(mapper, in.Characters),
		Threads:     threads,
		Current:     current,
		OtherArcs:   others,
		Progression: progression,
		Counts: Counts{
			Sessions:   len(progression),
			Arcs:       len(timeline),
			Quests:     len(threads),
			NPCs:       in.Counts[entity.TypeNPC],
			Locations:  in.Counts[entity.TypeLocation],
			Encounters: in.Counts[entity.TypeEncounter],
		},
	}
}

// Threads keeps open quests, ordered by quest type then priority. Unknown
// types and priorities weigh 4.
func Threads(mapper *viewmodel.Mapper, quests []entity.Record) []viewmodel.ViewModel {
	threads := make([]viewmodel.ViewModel, 0, len(quests))
	for _, rec := range quests {
		model := mapper.Map(rec, entity.TypeQuest)
		if containsAny(model.Status, closedQuestStatuses) {
			continue
		}
		threads = append(threads, model)
	}
	sort.SliceStable(threads, func(i, j int) bool {
		wi, wj := typeWeight(threads[i]), typeWeight(threads[j])
		if wi != wj {
			return wi < wj
		}
		return priorityWeight(threads[i]) < priorityWeight(threads[j])
	})
	return threads
}

// ActiveParty lists characters that are neither dead nor retired.
func ActiveParty(mapper *viewmodel.Mapper, characters []entity.Record) []viewmodel.ViewModel {
	party := make([]viewmodel.ViewModel, 0, len(characters))
	for _, rec := range characters {
		model := mapper.Map(rec, entity.TypeCharacter)
		if containsAny(model.Status, inactiveCharacterStatuses) {
			continue
		}
		party = append(party, model)
	}
	return party
}

func typeWeight(model viewmodel.ViewModel) int {
	questType := strings.ToLower(attrs.String(model.Attributes, "Quest Type", "Type"))
	if w, ok := typeWeights[questType]; ok {
		return w
	}
	return unrankedWeight
}

func priorityWeight(model viewmodel.ViewModel) int {
	if w, ok := priorityWeights[strings.ToLower(model.Meta.Priority)]; ok {
		return w
	}
	return unrankedWeight
}

// sessions maps and orders sessions newest first.
func sessions(mapper *viewmodel.Mapper, records []entity.Record) []Session {
	out := make([]Session, 0, len(records))
	for _, rec := range records {
		out = append(out, Session{
			ViewModel: mapper.Map(rec, entity.TypeSession),
			Number:    SessionNumber(rec),
			ArcID:     rec.ArcID,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number > out[j].Number
	})
	return out
}

// SessionNumber reads the session number attribute, then the first number
// in the name.
func SessionNumber(rec entity.Record) int {
	if raw := attrs.String(rec.Attributes, entity.SessionNumberKeys...); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n
		}
	}
	return grouping.SessionNumber(rec.Name)
}

// arcs groups sessions under their arc, highest arc order first. Sessions
// without an arc stay out of the timeline.
func arcs(defined []store.Arc, progression []Session) []Arc {
	byID := make(map[string]store.Arc, len(defined))
	for _, arc := range defined {
		byID[arc.ID] = arc
	}

	index := make(map[string]int)
	var timeline []Arc
	for _, session := range progression {
		if session.ArcID == "" {
			continue
		}
		i, ok := index[session.ArcID]
		if !ok {
			meta, known := byID[session.ArcID]
			arc := Arc{ID: session.ArcID, Title: session.ArcID}
			if known {
				arc.Title = meta.Title
				arc.Description = meta.Description
				arc.Order = meta.Order
			}
			timeline = append(timeline, arc)
			i = len(timeline) - 1
			index[session.ArcID] = i
		}
		timeline[i].Sessions = append(timeline[i].Sessions, session)
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Order > timeline[j].Order
	})
	return timeline
}

func containsAny(value string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(value, term) {
			return true
		}
	}
	return false
}
