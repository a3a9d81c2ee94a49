// Package parse extracts structured suggestions from untrusted provider text.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/topiqhq/topiq/internal/assistant/domain"
)

const defaultRelevanceScore = 5

// rawSuggestion tolerates missing or mistyped fields; anything unusable
// falls back to a default rather than failing the whole reply.
type rawSuggestion struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	RelevanceScore json.RawMessage `json:"relevance_score"`
	Sources        json.RawMessage `json:"sources"`
	KeyPoints      []string        `json:"key_points"`
	SuggestedAngle string          `json:"suggested_angle"`
}

// TopicSuggestions pulls the outermost JSON array out of free text — from
// the first '[' to the last ']' — and decodes whatever it can. It never
// returns an error: a malformed or array-free reply yields nil.
func TopicSuggestions(text string) []domain.TopicSuggestion {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil
	}

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}

	suggestions := make([]domain.TopicSuggestion, 0, len(raw))
	for _, item := range raw {
		suggestions = append(suggestions, domain.TopicSuggestion{
			Title:          item.Title,
			Description:    item.Description,
			RelevanceScore: relevance(item.RelevanceScore),
			Sources:        item.Sources,
			KeyPoints:      item.KeyPoints,
			SuggestedAngle: item.SuggestedAngle,
		})
	}
	return suggestions
}

func relevance(raw json.RawMessage) int {
	if len(raw) == 0 {
		return defaultRelevanceScore
	}
	var score int
	if err := json.Unmarshal(raw, &score); err != nil {
		return defaultRelevanceScore
	}
	return score
}
