package strategies

import (
	"strings"
	"testing"

	"socialmetrics-backend/internal/analytics"
)

func assertSequentialIDs(t *testing.T, set []Strategy) {
	t.Helper()
	if len(set) != SetSize {
		t.Fatalf("expected %d strategies, got %d", SetSize, len(set))
	}
	for i, s := range set {
		if s.ID != i+1 {
			t.Fatalf("strategy %d has id %d", i, s.ID)
		}
		if len(s.ActionItems) == 0 || len(s.MetricsToTrack) == 0 {
			t.Fatalf("strategy %d has empty lists: %+v", s.ID, s)
		}
	}
}

func TestRuleBasedDeclineExample(t *testing.T) {
	report := analytics.Aggregate(analytics.Periods{
		Q1: []analytics.DailyRecord{{Metrics: map[string]any{"likes": 100.0, "impressions": 1000.0}}},
		Q2: []analytics.DailyRecord{{Metrics: map[string]any{"likes": 80.0, "impressions": 1200.0}}},
	})
	set := RuleBased(report)
	assertSequentialIDs(t, set)

	first := set[0]
	if first.Title != "Boost Engagement Through Interactive Content" || first.Priority != PriorityHigh {
		t.Fatalf("unexpected first strategy %+v", first)
	}
	if !strings.HasPrefix(first.Description, "Your likes decreased by 20.0%.") {
		t.Fatalf("unexpected description %q", first.Description)
	}
	if set[1].Title != "Scale Content Distribution Strategy" || !strings.Contains(set[1].Description, "increased by 20.0%") {
		t.Fatalf("unexpected impressions strategy %+v", set[1])
	}
	if set[4].Title != "Implement Data-Driven Content Optimization" {
		t.Fatalf("unexpected last strategy %q", set[4].Title)
	}
}

func TestRuleBasedEmptyReport(t *testing.T) {
	_, set := RuleBasedFromPeriods(nil)
	assertSequentialIDs(t, set)
	for _, s := range set[:4] {
		if !strings.Contains(s.Description, "increased by N/A") {
			t.Fatalf("expected growth variant with N/A, got %q", s.Description)
		}
	}
	if set[2].ExpectedImpact != "Sustained sharing growth" {
		t.Fatalf("unexpected shares impact %q", set[2].ExpectedImpact)
	}
}

func TestNormalizePadsAndTruncates(t *testing.T) {
	short := Normalize([]Strategy{{ID: 9, Title: "Only one"}}, Catalogue())
	assertSequentialIDs(t, short)
	if short[0].Title != "Only one" || short[1].Title != "Enhance Visual Content Strategy" {
		t.Fatalf("unexpected padding %q, %q", short[0].Title, short[1].Title)
	}

	var long []Strategy
	for i := 0; i < 7; i++ {
		long = append(long, Strategy{ID: 100 + i, Title: "s", ActionItems: []string{"a"}, MetricsToTrack: []string{"m"}})
	}
	trimmed := Normalize(long, nil)
	assertSequentialIDs(t, trimmed)

	padded := Normalize(nil, nil)
	assertSequentialIDs(t, padded)
	if padded[2].Title != "Additional Strategy 3" || padded[2].Category != "Growth" {
		t.Fatalf("unexpected placeholder %+v", padded[2])
	}
}

func TestCatalogueIsCopied(t *testing.T) {
	a := Catalogue()
	a[0].ActionItems[0] = "changed"
	if Catalogue()[0].ActionItems[0] == "changed" {
		t.Fatalf("catalogue must not share slices")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"strategies":[]}`, `{"strategies":[]}`},
		{"json fence", "```json\n{\"strategies\":[]}\n```", `{"strategies":[]}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Fatalf("StripCodeFence = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSet(t *testing.T) {
	set, err := ParseSet("Sure! Here you go: {\"strategies\":[{\"id\":\"1\",\"title\":\"Loose\",\"action_items\":[\"x\"]}]} Thanks")
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	if len(set) != 1 || set[0].Title != "Loose" || set[0].ActionItems[0] != "x" {
		t.Fatalf("unexpected set %+v", set)
	}
	if _, err := ParseSet("no json here"); err != ErrUnstructuredReply {
		t.Fatalf("expected ErrUnstructuredReply, got %v", err)
	}
	if _, err := ParseSet(`{"other":1}`); err != ErrUnstructuredReply {
		t.Fatalf("expected ErrUnstructuredReply for missing strategies key, got %v", err)
	}
}

func TestExtractHeuristic(t *testing.T) {
	text := strings.Join([]string{
		"Here are my thoughts on your account:",
		"Strategy 1: Post consistently during peak hours",
		"Consistent posting builds audience habits and improves reach over time.",
		"short",
		"Strategy 2: Use more video content in your feed",
	}, "\n")
	set := ExtractHeuristic(text)
	assertSequentialIDs(t, set)

	first := set[0]
	if first.Title != "Strategy 1" || first.Category != "Engagement" || first.Priority != PriorityHigh {
		t.Fatalf("unexpected first strategy %+v", first)
	}
	want := "Post consistently during peak hours Consistent posting builds audience habits and improves reach over time."
	if first.Description != want {
		t.Fatalf("description = %q, want %q", first.Description, want)
	}
	if set[1].Description != "Use more video content in your feed" {
		t.Fatalf("unexpected second description %q", set[1].Description)
	}
	if set[2].Title != "Additional Strategy 3" {
		t.Fatalf("expected padding, got %q", set[2].Title)
	}
}

func TestExtractHeuristicStopsAtFive(t *testing.T) {
	var lines []string
	for i := 1; i <= 8; i++ {
		lines = append(lines, "Recommendation: grow the audience with more posts")
	}
	set := ExtractHeuristic(strings.Join(lines, "\n"))
	assertSequentialIDs(t, set)
	if set[4].Title != "Strategy 5" || set[4].Priority != PriorityLow {
		t.Fatalf("unexpected fifth strategy %+v", set[4])
	}
}
