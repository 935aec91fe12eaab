package relation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// orderedObject is a top-level JSON object decoded with its key order intact.
type orderedObject []KeyedEntry

// decode parses a single JSON value. A top-level object keeps its member
// order; nested values decode into the usual maps and slices.
func decode(data []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		if !atEOF(dec) {
			return nil, false
		}
		return value, true
	}

	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	obj := orderedObject{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		obj = append(obj, KeyedEntry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	if !atEOF(dec) {
		return nil, false
	}
	return obj, true
}

func atEOF(dec *json.Decoder) bool {
	_, err := dec.Token()
	return errors.Is(err, io.EOF)
}
