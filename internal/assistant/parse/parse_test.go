package parse

import (
	"encoding/json"
	"testing"
)

func TestTopicSuggestions(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{
			name: "bare array",
			text: `[{"title":"a","relevance_score":8},{"title":"b"}]`,
			want: 2,
		},
		{
			name: "array wrapped in prose",
			text: "Here are my findings:\n[{\"title\":\"a\"}]\nLet me know if you need more.",
			want: 1,
		},
		{
			name: "no array at all",
			text: "I could not find any relevant news this week.",
			want: 0,
		},
		{
			name: "broken json",
			text: `[{"title": "unterminated`,
			want: 0,
		},
		{
			name: "empty array",
			text: `[]`,
			want: 0,
		},
		{
			name: "empty input",
			text: "",
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TopicSuggestions(tc.text)
			if len(got) != tc.want {
				t.Fatalf("got %d suggestions, want %d", len(got), tc.want)
			}
		})
	}
}

func TestTopicSuggestionsDefaults(t *testing.T) {
	got := TopicSuggestions(`[{"title":"only a title"}]`)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	s := got[0]
	if s.RelevanceScore != 5 {
		t.Errorf("relevance = %d, want default 5", s.RelevanceScore)
	}
	if s.Description != "" || s.SuggestedAngle != "" {
		t.Errorf("missing strings should stay empty, got %q %q", s.Description, s.SuggestedAngle)
	}
	if len(s.Sources) != 0 || len(s.KeyPoints) != 0 {
		t.Errorf("missing lists should stay empty, got %v %v", s.Sources, s.KeyPoints)
	}
}

func TestTopicSuggestionsMistypedScore(t *testing.T) {
	got := TopicSuggestions(`[{"title":"a","relevance_score":"very high"}]`)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].RelevanceScore != 5 {
		t.Errorf("relevance = %d, want default 5 for non-numeric score", got[0].RelevanceScore)
	}
}

func TestTopicSuggestionsFullItem(t *testing.T) {
	text := `Some preamble [
	  {
	    "title": "IPO window reopens",
	    "description": "Three listings priced above range.",
	    "relevance_score": 9,
	    "sources": ["https://example.com/a"],
	    "key_points": ["p1", "p2"],
	    "suggested_angle": "Contrarian take"
	  }
	] trailing text`
	got := TopicSuggestions(text)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	s := got[0]
	if s.Title != "IPO window reopens" || s.RelevanceScore != 9 {
		t.Errorf("unexpected parse: %+v", s)
	}
	var urls []string
	if err := json.Unmarshal(s.Sources, &urls); err != nil || len(urls) != 1 {
		t.Errorf("sources not preserved: %s", s.Sources)
	}
	if len(s.KeyPoints) != 2 {
		t.Errorf("key points not parsed: %+v", s)
	}
}

// Providers sometimes return sources as objects rather than URL strings;
// both shapes must survive parsing untouched.
func TestTopicSuggestionsObjectSources(t *testing.T) {
	text := `[
	  {
	    "title": "Chip export rules tighten",
	    "relevance_score": 7,
	    "sources": [{"url": "https://example.com/chips", "title": "Export update", "date": "2026-08-20"}]
	  }
	]`
	got := TopicSuggestions(text)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	var entries []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
		Date  string `json:"date"`
	}
	if err := json.Unmarshal(got[0].Sources, &entries); err != nil {
		t.Fatalf("sources not valid JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].URL != "https://example.com/chips" || entries[0].Date != "2026-08-20" {
		t.Errorf("source entry mangled: %+v", entries)
	}
}
