package ai

import (
	"encoding/json"
	"math"
	"strings"
)

// ParseSuggestion recovers a Suggestion from raw model output. Backends
// routinely wrap the JSON in prose or code fences despite instructions, so a
// failed direct parse falls back to the widest {..} or [..] substring. The
// second return value is false only when no JSON object could be recovered
// at all; type-mismatched fields are dropped one by one, never fatally.
func ParseSuggestion(raw string) (Suggestion, bool) {
	fields, ok := decodeObject(raw)
	if !ok {
		candidate, found := extractJSON(raw)
		if !found {
			return Suggestion{}, false
		}
		fields, ok = decodeObject(candidate)
		if !ok {
			return Suggestion{}, false
		}
	}

	var s Suggestion
	s.PriorityScore = intField(fields, "priority_score")
	s.Deadline = stringField(fields, "deadline")
	if v := stringField(fields, "improved_description"); v != nil {
		s.ImprovedDescription = *v
	}
	if v := stringField(fields, "suggested_category"); v != nil {
		s.SuggestedCategory = *v
	}
	return s, true
}

func decodeObject(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &m); err != nil {
		return nil, false
	}
	return m, true
}

// extractJSON returns the greedy substring from the first opening brace or
// bracket to the last matching closer, whichever bracket kind opens first.
func extractJSON(s string) (string, bool) {
	obj := strings.Index(s, "{")
	arr := strings.Index(s, "[")

	open := obj
	closer := "}"
	if open == -1 || (arr != -1 && arr < open) {
		open = arr
		closer = "]"
	}
	if open == -1 {
		return "", false
	}

	end := strings.LastIndex(s, closer)
	if end <= open {
		return "", false
	}
	return s[open : end+1], true
}

// intField accepts only integral JSON numbers; "7", 7.5 and true all count
// as absent.
func intField(m map[string]any, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

func stringField(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
