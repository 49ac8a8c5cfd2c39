package ai

import "testing"

func TestParseSuggestionDirectJSON(t *testing.T) {
	t.Parallel()

	s, ok := ParseSuggestion(`{"priority_score":8,"deadline":"2030-08-15","improved_description":"do it","suggested_category":"Work"}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if s.PriorityScore == nil || *s.PriorityScore != 8 {
		t.Fatalf("priority_score = %v", s.PriorityScore)
	}
	if s.Deadline == nil || *s.Deadline != "2030-08-15" {
		t.Fatalf("deadline = %v", s.Deadline)
	}
	if s.ImprovedDescription != "do it" {
		t.Fatalf("improved_description = %q", s.ImprovedDescription)
	}
	if s.SuggestedCategory != "Work" {
		t.Fatalf("suggested_category = %q", s.SuggestedCategory)
	}
}

func TestParseSuggestionWrappedInProse(t *testing.T) {
	t.Parallel()

	raw := `Sure! Here is the result: {"priority_score":7,"deadline":null,"improved_description":"x","suggested_category":"Work"} Hope that helps!`
	s, ok := ParseSuggestion(raw)
	if !ok {
		t.Fatal("expected embedded object to be recovered")
	}
	if s.PriorityScore == nil || *s.PriorityScore != 7 {
		t.Fatalf("priority_score = %v", s.PriorityScore)
	}
	if s.Deadline != nil {
		t.Fatalf("null deadline should be absent, got %v", *s.Deadline)
	}
	if s.ImprovedDescription != "x" || s.SuggestedCategory != "Work" {
		t.Fatalf("unexpected fields: %+v", s)
	}
}

func TestParseSuggestionCodeFence(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"priority_score\":3,\"improved_description\":\"fenced\"}\n```"
	s, ok := ParseSuggestion(raw)
	if !ok {
		t.Fatal("expected fenced object to be recovered")
	}
	if s.PriorityScore == nil || *s.PriorityScore != 3 || s.ImprovedDescription != "fenced" {
		t.Fatalf("unexpected fields: %+v", s)
	}
}

func TestParseSuggestionNotJSON(t *testing.T) {
	t.Parallel()

	if _, ok := ParseSuggestion("not json at all"); ok {
		t.Fatal("expected parse to fail")
	}
	if _, ok := ParseSuggestion(""); ok {
		t.Fatal("expected parse of empty string to fail")
	}
	if _, ok := ParseSuggestion("{broken"); ok {
		t.Fatal("expected parse of unbalanced braces to fail")
	}
}

func TestParseSuggestionDropsMistypedFields(t *testing.T) {
	t.Parallel()

	s, ok := ParseSuggestion(`{"priority_score":"high","deadline":12,"improved_description":"ok","suggested_category":null}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if s.PriorityScore != nil {
		t.Fatalf("string score should be dropped, got %v", *s.PriorityScore)
	}
	if s.Deadline != nil {
		t.Fatalf("numeric deadline should be dropped, got %v", *s.Deadline)
	}
	if s.SuggestedCategory != "" {
		t.Fatalf("null category should be absent, got %q", s.SuggestedCategory)
	}
	if s.ImprovedDescription != "ok" {
		t.Fatal("valid field should survive its siblings being dropped")
	}
}

func TestParseSuggestionNonIntegralScore(t *testing.T) {
	t.Parallel()

	s, ok := ParseSuggestion(`{"priority_score":7.5}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if s.PriorityScore != nil {
		t.Fatalf("fractional score should be dropped, got %v", *s.PriorityScore)
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	got, ok := extractJSON(`prefix {"a":1} suffix`)
	if !ok || got != `{"a":1}` {
		t.Fatalf("extractJSON = %q, %v", got, ok)
	}

	got, ok = extractJSON(`noise [1,2,3] tail`)
	if !ok || got != `[1,2,3]` {
		t.Fatalf("extractJSON = %q, %v", got, ok)
	}

	if _, ok := extractJSON("nothing here"); ok {
		t.Fatal("expected extraction to fail without brackets")
	}
}
