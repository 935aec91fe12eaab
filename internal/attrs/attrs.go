// Package attrs reads values out of loosely typed entity attribute bags.
//
// A logical field such as "status" may be stored under several keys
// ("status", "Quest Status") and its value may be wrapped in a list or an
// object with a "value" field. Callers pass the candidate keys they accept,
// in priority order; nothing here folds case on their behalf.
package attrs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Bag maps attribute names to scalar or structured values.
type Bag map[string]any

// Lookup returns the raw value stored under the first candidate key that
// holds something usable. A nil bag resolves nothing.
func Lookup(bag Bag, keys ...string) (any, bool) {
	if bag == nil {
		return nil, false
	}
	for _, key := range keys {
		value, ok := bag[key]
		if !ok || value == nil {
			continue
		}
		if Unwrap(value) == "" {
			continue
		}
		return value, true
	}
	return nil, false
}

// String returns the unwrapped string for the first resolvable candidate key,
// or "" when none resolve.
func String(bag Bag, keys ...string) string {
	value, ok := Lookup(bag, keys...)
	if !ok {
		return ""
	}
	return Unwrap(value)
}

// StringOr is String with an explicit fallback.
func StringOr(bag Bag, fallback string, keys ...string) string {
	if value := String(bag, keys...); value != "" {
		return value
	}
	return fallback
}

// Unwrap flattens an attribute value into a display string. Lists yield their
// first element, objects yield their "value" field.
func Unwrap(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		if obj, ok := v[0].(map[string]any); ok {
			return Unwrap(obj["value"])
		}
		return Unwrap(v[0])
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case map[string]any:
		return Unwrap(v["value"])
	case Bag:
		return Unwrap(v["value"])
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Parse coerces a raw attributes column into a Bag. It accepts a Bag or map,
// JSON text, or the name/value row list produced by joined attribute tables.
// Anything it cannot read becomes an empty bag.
func Parse(raw any) Bag {
	switch v := raw.(type) {
	case nil:
		return Bag{}
	case Bag:
		return v
	case map[string]any:
		return Bag(v)
	case string:
		return parseJSON([]byte(v))
	case []byte:
		return parseJSON(v)
	case json.RawMessage:
		return parseJSON(v)
	case []any:
		return fromRows(v)
	default:
		return Bag{}
	}
}

func parseJSON(data []byte) Bag {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Bag{}
	}
	var decoded any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return Bag{}
	}
	switch v := decoded.(type) {
	case map[string]any:
		return Bag(v)
	case []any:
		return fromRows(v)
	default:
		return Bag{}
	}
}

func fromRows(rows []any) Bag {
	bag := Bag{}
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := obj["value"]; !ok {
			continue
		}
		bag[name] = obj["value"]
	}
	return bag
}
