// Package grouping arranges view models for a sidebar listing: nested by
// hierarchy, bucketed by a derived key, or as a flat A-Z list.
package grouping

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"campaignwiki/internal/entity"
	"campaignwiki/internal/viewmodel"
)

type Mode string

const (
	ModeTree    Mode = "tree"
	ModeGrouped Mode = "grouped"
	ModeFlat    Mode = "flat"
)

const (
	GroupMainQuest     = "Main Quest"
	GroupPersonalQuest = "Personal Quest"
	GroupSideQuest     = "Side Quest"
	GroupOther         = "Other"
)

var (
	factionGroupOrder = []string{entity.LabelAllies, entity.LabelNeutral, entity.LabelEnemies, entity.LabelUnknown}
	questGroupOrder   = []string{GroupMainQuest, GroupPersonalQuest, GroupSideQuest}
	questStatusOrder  = []string{"active", "in progress", "pending", "completed", "success", "failed", "abandoned"}

	firstNumber = regexp.MustCompile(`\d+`)
)

// Node is a view model with the entries nested under it.
type Node struct {
	viewmodel.ViewModel
	Children []*Node `json:"children,omitempty"`
}

type Group struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	Tree  bool    `json:"tree,omitempty"`
	Items []*Node `json:"items"`
}

// ModeFor returns the layout used for a listing of the given type.
func ModeFor(contextType string) Mode {
	switch entity.NormalizeType(contextType) {
	case entity.TypeLocation, entity.TypeEncounter, entity.TypeNPC:
		return ModeTree
	case entity.TypeSession, entity.TypeFaction, entity.TypeQuest:
		return ModeGrouped
	default:
		return ModeFlat
	}
}

type Grouper struct {
	mapper *viewmodel.Mapper
}

func New(mapper *viewmodel.Mapper) *Grouper {
	if mapper == nil {
		mapper = viewmodel.New(viewmodel.Options{})
	}
	return &Grouper{mapper: mapper}
}

// Group filters records by a case-insensitive name substring, maps them as
// a contextType listing and lays them out. No records yields no groups.
func (g *Grouper) Group(records []entity.Record, contextType, filter string) []Group {
	needle := strings.ToLower(strings.TrimSpace(filter))
	items := make([]viewmodel.ViewModel, 0, len(records))
	for _, rec := range records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.Name), needle) {
			continue
		}
		items = append(items, g.mapper.Map(rec, contextType))
	}
	if len(items) == 0 {
		return []Group{}
	}

	names := newNameOrder()
	contextType = entity.NormalizeType(contextType)

	switch ModeFor(contextType) {
	case ModeTree:
		roots := buildTree(items)
		sortTree(roots, treeLess(contextType, names))
		return []Group{{ID: "root", Tree: true, Items: roots}}
	case ModeGrouped:
		return groupItems(items, contextType, names)
	default:
		nodes := toNodes(items)
		sort.SliceStable(nodes, func(i, j int) bool {
			return names.less(nodes[i].Name, nodes[j].Name)
		})
		return []Group{{ID: "all", Items: nodes}}
	}
}

func toNodes(items []viewmodel.ViewModel) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, &Node{ViewModel: item})
	}
	return nodes
}

// buildTree nests items under their parent when the parent is in the list.
// When the list mixes types, locations act as folders and are dropped once
// they have nothing under them.
func buildTree(items []viewmodel.ViewModel) []*Node {
	nodes := toNodes(items)
	byID := make(map[string]*Node, len(nodes))
	for _, node := range nodes {
		if node.ID != "" {
			byID[node.ID] = node
		}
	}

	roots := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		parentID := node.Meta.ParentID
		if parent, ok := byID[parentID]; ok && parentID != "" && parent != node {
			parent.Children = append(parent.Children, node)
			continue
		}
		roots = append(roots, node)
	}

	mixed := false
	for _, item := range items {
		if item.Type != entity.TypeLocation {
			mixed = true
			break
		}
	}
	if !mixed {
		return roots
	}
	return prune(roots)
}

func prune(nodes []*Node) []*Node {
	kept := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		if len(node.Children) > 0 {
			node.Children = prune(node.Children)
		}
		if node.Type == entity.TypeLocation && len(node.Children) == 0 {
			continue
		}
		kept = append(kept, node)
	}
	return kept
}

func sortTree(nodes []*Node, less func(a, b *Node) bool) {
	sort.SliceStable(nodes, func(i, j int) bool { return less(nodes[i], nodes[j]) })
	for _, node := range nodes {
		if len(node.Children) > 0 {
			sortTree(node.Children, less)
		}
	}
}

func treeLess(contextType string, names *nameOrder) func(a, b *Node) bool {
	return func(a, b *Node) bool {
		if contextType != entity.TypeLocation && a.Type != b.Type {
			if a.Type == entity.TypeLocation {
				return true
			}
			if b.Type == entity.TypeLocation {
				return false
			}
		}
		if contextType == entity.TypeNPC && a.Type == entity.TypeNPC && b.Type == entity.TypeNPC {
			if a.Meta.AffinityRank != b.Meta.AffinityRank {
				return a.Meta.AffinityRank < b.Meta.AffinityRank
			}
		}
		return names.less(a.Name, b.Name)
	}
}

func groupItems(items []viewmodel.ViewModel, contextType string, names *nameOrder) []Group {
	buckets := make(map[string][]*Node)
	keys := make([]string, 0)
	for _, node := range toNodes(items) {
		key := groupKey(node.ViewModel, contextType)
		if key == "" {
			key = GroupOther
		}
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], node)
	}

	itemLess := func(a, b *Node) bool { return names.less(a.Name, b.Name) }
	switch contextType {
	case entity.TypeSession:
		itemLess = func(a, b *Node) bool {
			na, nb := SessionNumber(a.Name), SessionNumber(b.Name)
			if na != nb {
				return na < nb
			}
			return names.less(a.Name, b.Name)
		}
	case entity.TypeQuest:
		itemLess = func(a, b *Node) bool {
			ia, ib := statusIndex(a.Meta.Status), statusIndex(b.Meta.Status)
			if ia != ib {
				return ia < ib
			}
			return names.less(a.Name, b.Name)
		}
	}
	for _, key := range keys {
		nodes := buckets[key]
		sort.SliceStable(nodes, func(i, j int) bool { return itemLess(nodes[i], nodes[j]) })
	}

	switch contextType {
	case entity.TypeFaction:
		sortByOrder(keys, factionGroupOrder, names)
	case entity.TypeQuest:
		sortByOrder(keys, questGroupOrder, names)
	case entity.TypeSession:
		// Arcs follow the earliest session they contain.
		sort.SliceStable(keys, func(i, j int) bool {
			return SessionNumber(buckets[keys[i]][0].Name) < SessionNumber(buckets[keys[j]][0].Name)
		})
	}

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, Group{ID: key, Title: key, Items: buckets[key]})
	}
	return groups
}

func groupKey(item viewmodel.ViewModel, contextType string) string {
	switch contextType {
	case entity.TypeSession:
		return item.Meta.CampaignArc
	case entity.TypeFaction:
		return entity.RankLabel(item.Meta.AffinityRank)
	case entity.TypeQuest:
		return QuestGroup(item.Meta.QuestType)
	default:
		return ""
	}
}

// QuestGroup buckets a free-form quest type.
func QuestGroup(questType string) string {
	lower := strings.ToLower(questType)
	switch {
	case strings.Contains(lower, "main"):
		return GroupMainQuest
	case strings.Contains(lower, "personal"):
		return GroupPersonalQuest
	default:
		return GroupSideQuest
	}
}

// SessionNumber is the first number in a session name, or 0.
func SessionNumber(name string) int {
	match := firstNumber.FindString(name)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

func statusIndex(status string) int {
	for i, s := range questStatusOrder {
		if s == status {
			return i
		}
	}
	return 99
}

func sortByOrder(keys, order []string, names *nameOrder) {
	index := func(key string) int {
		for i, o := range order {
			if o == key {
				return i
			}
		}
		return 999
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ia, ib := index(keys[i]), index(keys[j])
		if ia != ib {
			return ia < ib
		}
		return names.less(keys[i], keys[j])
	})
}

// nameOrder compares display names with English collation. A collator keeps
// scratch buffers, so each grouping pass gets its own.
type nameOrder struct {
	collator *collate.Collator
}

func newNameOrder() *nameOrder {
	return &nameOrder{collator: collate.New(language.English)}
}

func (n *nameOrder) less(a, b string) bool {
	return n.collator.CompareString(a, b) < 0
}
