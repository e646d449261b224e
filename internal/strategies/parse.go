package strategies

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnstructuredReply is returned when a model reply holds no strategies object.
var ErrUnstructuredReply = errors.New("model reply is not a strategies object")

// StripCodeFence removes a surrounding markdown code fence and a leading "json" language tag.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		parts := strings.Split(cleaned, "```")
		if len(parts) > 1 {
			cleaned = parts[1]
		}
		cleaned = strings.TrimSpace(cleaned)
		if strings.HasPrefix(strings.ToLower(cleaned), "json") {
			cleaned = cleaned[len("json"):]
		}
	}
	return strings.TrimSpace(cleaned)
}

// ParseSet decodes a model reply into strategies. It tries the fence-stripped
// text first and then the outermost {...} block.
func ParseSet(text string) ([]Strategy, error) {
	cleaned := StripCodeFence(text)
	if set, ok := decodeSet(cleaned); ok {
		return set, nil
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if set, ok := decodeSet(cleaned[start : end+1]); ok {
			return set, nil
		}
	}
	return nil, ErrUnstructuredReply
}

func decodeSet(text string) ([]Strategy, bool) {
	var raw struct {
		Strategies []json.RawMessage `json:"strategies"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil || raw.Strategies == nil {
		return nil, false
	}
	out := make([]Strategy, 0, len(raw.Strategies))
	for _, item := range raw.Strategies {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var s Strategy
		if err := json.Unmarshal(trimmed, &s); err != nil {
			// tolerate a wrongly typed field such as a string id
			s = looseStrategy(trimmed)
		}
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		out = append(out, s)
	}
	return out, true
}

func looseStrategy(item json.RawMessage) Strategy {
	var m map[string]any
	if err := json.Unmarshal(item, &m); err != nil {
		return Strategy{}
	}
	str := func(key string) string {
		v, _ := m[key].(string)
		return v
	}
	list := func(key string) []string {
		items, _ := m[key].([]any)
		var out []string
		for _, it := range items {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return Strategy{
		Title:              str("title"),
		Description:        str("description"),
		Category:           str("category"),
		Priority:           str("priority"),
		ImplementationTime: str("implementation_time"),
		ExpectedImpact:     str("expected_impact"),
		ActionItems:        list("action_items"),
		MetricsToTrack:     list("metrics_to_track"),
	}
}
