package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

func decodeObject(data []byte) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func decodeArray(data json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func decodeItems(data json.RawMessage) ([]ItemPayload, error) {
	raw, ok := decodeArray(data)
	if !ok {
		return nil, nil
	}
	items := make([]ItemPayload, len(raw))
	for i, entry := range raw {
		if err := items[i].UnmarshalJSON(entry); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// looseNumber returns the value only when data is a JSON number.
func looseNumber(data json.RawMessage) *float64 {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !(trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9')) {
		return nil
	}
	v, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return nil
	}
	return &v
}

// looseString reads identifiers that clients sometimes send as numbers.
// Falsy values, objects, arrays and booleans read as empty.
func looseString(data json.RawMessage) string {
	trimmed := bytes.TrimSpace(data)
	if !truthy(trimmed) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
		return ""
	}
	if looseNumber(trimmed) != nil {
		return string(trimmed)
	}
	return ""
}

// truthy treats missing, null, false, zero and "" as absent.
func truthy(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	switch string(trimmed) {
	case "null", "false", `""`:
		return false
	}
	if n := looseNumber(trimmed); n != nil && *n == 0 {
		return false
	}
	return true
}
