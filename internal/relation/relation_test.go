package relation

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	ally := Relationship{EntityID: "1", EntityName: "Aldric", EntityType: "npc", Type: "ALLY_OF"}
	home := Relationship{EntityID: "2", EntityName: "Korinis", EntityType: "location", Type: "located_in", Direction: "outgoing"}

	tests := []struct {
		name     string
		raw      any
		expected []Relationship
	}{
		{
			name: "sequence of objects",
			raw: []any{
				map[string]any{"entity_id": "1", "entity_name": "Aldric", "entity_type": "npc", "type": "ALLY_OF"},
			},
			expected: []Relationship{ally},
		},
		{
			name:     "encoded text",
			raw:      `[{"entity_id":"1","entity_name":"Aldric","entity_type":"npc","type":"ALLY_OF"}]`,
			expected: []Relationship{ally},
		},
		{
			name:     "malformed text",
			raw:      "not json",
			expected: []Relationship{},
		},
		{
			name: "keyed mapping",
			raw: map[string]any{
				"x": map[string]any{"entity_id": "1", "entity_name": "Aldric", "entity_type": "npc", "type": "ALLY_OF"},
				"y": map[string]any{"entity_id": "2", "entity_name": "Korinis", "entity_type": "location", "type": "located_in", "direction": "outgoing"},
			},
			expected: []Relationship{ally, home},
		},
		{
			name:     "nil",
			raw:      nil,
			expected: []Relationship{},
		},
		{
			name:     "number",
			raw:      42,
			expected: []Relationship{},
		},
		{
			name:     "bool",
			raw:      true,
			expected: []Relationship{},
		},
		{
			name:     "numeric ids",
			raw:      json.RawMessage(`[{"entity_id":17,"entity_name":"Aldric","entity_type":"npc","type":"ALLY_OF"}]`),
			expected: []Relationship{{EntityID: "17", EntityName: "Aldric", EntityType: "npc", Type: "ALLY_OF"}},
		},
		{
			name:     "raw json object keeps document order",
			raw:      json.RawMessage(`{"y":{"entity_id":"2","entity_name":"Korinis","entity_type":"location","type":"located_in","direction":"outgoing"},"x":{"entity_id":"1","entity_name":"Aldric","entity_type":"npc","type":"ALLY_OF"}}`),
			expected: []Relationship{home, ally},
		},
		{
			name:     "raw json string holding an array",
			raw:      json.RawMessage(`"[{\"entity_id\":\"1\",\"entity_name\":\"Aldric\",\"entity_type\":\"npc\",\"type\":\"ALLY_OF\"}]"`),
			expected: []Relationship{ally},
		},
		{
			name:     "raw json null",
			raw:      json.RawMessage(`null`),
			expected: []Relationship{},
		},
		{
			name:     "trailing garbage",
			raw:      `[{"entity_id":"1"}] trailing`,
			expected: []Relationship{},
		},
		{
			name:     "non-object elements are dropped",
			raw:      []any{"junk", 3, map[string]any{"entity_id": "1", "entity_name": "Aldric", "entity_type": "npc", "type": "ALLY_OF"}},
			expected: []Relationship{ally},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got == nil {
				t.Fatalf("expected non-nil result")
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(`[{"entity_id":"1","type":"ALLY_OF"},{"entity_id":"2","type":"RIVAL_OF"}]`)
	second := Normalize(first)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identity on normalized input, got %#v", second)
	}
	if &first[0] != &second[0] {
		t.Fatalf("expected the same backing slice to be returned")
	}
}

func TestClassify(t *testing.T) {
	if _, ok := Classify([]any{}).(Sequence); !ok {
		t.Fatalf("expected Sequence")
	}
	if _, ok := Classify("[]").(EncodedText); !ok {
		t.Fatalf("expected EncodedText")
	}
	if _, ok := Classify(map[string]any{}).(KeyedMap); !ok {
		t.Fatalf("expected KeyedMap")
	}
	if _, ok := Classify(json.RawMessage(`{"a":{}}`)).(KeyedMap); !ok {
		t.Fatalf("expected KeyedMap for raw object")
	}
	if _, ok := Classify(3.5).(Other); !ok {
		t.Fatalf("expected Other")
	}
}
