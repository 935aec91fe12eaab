// Package relation normalizes entity relationship data into an ordered list.
//
// Backends hand relationships over as a JSON array, a JSON string that
// itself encodes an array, or an object keyed by relationship id. Normalize
// accepts any of them and never fails: shapes it does not recognise mean
// "no relationships".
package relation

import (
	"bytes"
	"encoding/json"
	"sort"

	"campaignwiki/internal/attrs"
)

// Relationship is one normalized link from an entity to another.
type Relationship struct {
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	EntityType string `json:"entity_type"`
	Type       string `json:"type"`
	Direction  string `json:"direction,omitempty"`
}

// Shape is the classified form of a raw relationships value.
type Shape interface {
	shape()
}

// Sequence is an already ordered list of relationship objects.
type Sequence []any

// EncodedText is relationship data serialized as JSON text.
type EncodedText string

// KeyedMap is an object of relationship objects, in enumeration order.
type KeyedMap []KeyedEntry

// KeyedEntry is one member of a KeyedMap.
type KeyedEntry struct {
	Key   string
	Value any
}

// Other is any value that carries no relationships.
type Other struct{}

func (Sequence) shape()    {}
func (EncodedText) shape() {}
func (KeyedMap) shape()    {}
func (Other) shape()       {}

// Classify tags a raw relationships value with its shape.
func Classify(raw any) Shape {
	switch v := raw.(type) {
	case nil:
		return Other{}
	case []any:
		return Sequence(v)
	case []map[string]any:
		seq := make(Sequence, 0, len(v))
		for _, item := range v {
			seq = append(seq, item)
		}
		return seq
	case string:
		return EncodedText(v)
	case json.RawMessage:
		return classifyJSON(v)
	case []byte:
		return classifyJSON(v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		entries := make(KeyedMap, 0, len(keys))
		for _, key := range keys {
			entries = append(entries, KeyedEntry{Key: key, Value: v[key]})
		}
		return entries
	default:
		return Other{}
	}
}

// Normalize returns the relationships held by raw, in order. The result is
// never nil. A []Relationship is returned unchanged.
func Normalize(raw any) []Relationship {
	if rels, ok := raw.([]Relationship); ok {
		if rels == nil {
			return []Relationship{}
		}
		return rels
	}

	switch s := Classify(raw).(type) {
	case Sequence:
		return fromSequence(s)
	case EncodedText:
		return fromText(string(s))
	case KeyedMap:
		values := make([]any, 0, len(s))
		for _, entry := range s {
			values = append(values, entry.Value)
		}
		return fromSequence(values)
	case Other:
		return []Relationship{}
	default:
		return []Relationship{}
	}
}

func fromText(text string) []Relationship {
	decoded, ok := decode([]byte(text))
	if !ok {
		return []Relationship{}
	}
	// Encoded text holds one level of structure; a string inside it is not
	// decoded again.
	switch v := decoded.(type) {
	case []any:
		return fromSequence(v)
	case orderedObject:
		values := make([]any, 0, len(v))
		for _, entry := range v {
			values = append(values, entry.Value)
		}
		return fromSequence(values)
	default:
		return []Relationship{}
	}
}

func classifyJSON(data []byte) Shape {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Other{}
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return Other{}
		}
		return EncodedText(text)
	case '[', '{':
		decoded, ok := decode(trimmed)
		if !ok {
			return Other{}
		}
		switch v := decoded.(type) {
		case []any:
			return Sequence(v)
		case orderedObject:
			return KeyedMap(v)
		}
	}
	return Other{}
}

func fromSequence(items []any) []Relationship {
	rels := make([]Relationship, 0, len(items))
	for _, item := range items {
		rel, ok := fromObject(item)
		if !ok {
			continue
		}
		rels = append(rels, rel)
	}
	return rels
}

func fromObject(item any) (Relationship, bool) {
	var obj map[string]any
	switch v := item.(type) {
	case Relationship:
		return v, true
	case map[string]any:
		obj = v
	default:
		return Relationship{}, false
	}
	return Relationship{
		EntityID:   attrs.Unwrap(obj["entity_id"]),
		EntityName: attrs.Unwrap(obj["entity_name"]),
		EntityType: attrs.Unwrap(obj["entity_type"]),
		Type:       attrs.Unwrap(obj["type"]),
		Direction:  attrs.Unwrap(obj["direction"]),
	}, true
}
