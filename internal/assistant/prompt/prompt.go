// Package prompt renders the instruction text sent to the provider.
package prompt

import (
	"fmt"
	"strings"

	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
)

// monitorFocusAreas caps how many focus areas the monitoring instruction
// embeds; later entries still shape brainstorms but not searches.
const monitorFocusAreas = 4

const defaultSteering = "Help me draft a compelling LinkedIn post on this topic"

// Monitoring renders the news-scan instruction for one profile. The reply
// format request keeps the parser's job tractable: a bare JSON array, no
// prose around it.
func Monitoring(profile *profiledomain.Profile) string {
	focus := profile.FocusAreas
	if len(focus) > monitorFocusAreas {
		focus = focus[:monitorFocusAreas]
	}

	var b strings.Builder
	b.WriteString("You are monitoring industry news for a content creator focused on:\n")
	for _, area := range focus {
		fmt.Fprintf(&b, "- %s\n", area)
	}
	fmt.Fprintf(&b, "\nTarget audience: %s\n", profile.TargetAudience)
	b.WriteString(`
Your task:
1. Search for recent news (past week) on these topics
2. Identify 3-5 stories that would make compelling posts
3. For each story, provide:
   - A catchy title
   - Why it's relevant to the target audience
   - Key data points or insights
   - A suggested angle for the post
   - Relevance score (1-10)

Focus on stories with:
- New data or market insights
- Contrarian or surprising findings
- Actionable takeaways
- Comparative analysis opportunities

Return ONLY a JSON array with this structure, no other text:
[
  {
    "title": "Story headline",
    "description": "2-3 sentence summary",
    "relevance_score": 8,
    "sources": [{"url": "https://...", "title": "Source headline", "date": "2026-01-15"}],
    "key_points": ["point 1", "point 2", "point 3"],
    "suggested_angle": "How to position this for maximum value"
  }
]
`)
	return b.String()
}

// Brainstorm renders the drafting instruction for one chosen topic. Empty
// steering falls back to a default ask.
func Brainstorm(topic *topicdomain.Topic, profile *profiledomain.Profile, steering string) string {
	if strings.TrimSpace(steering) == "" {
		steering = defaultSteering
	}

	var b strings.Builder
	b.WriteString("You are a content strategist helping create a post.\n\n")
	fmt.Fprintf(&b, "TOPIC: %s\n\nCONTEXT:\n%s\n\nKEY POINTS:\n", topic.Title, topic.Description)
	for _, point := range topic.KeyPoints {
		fmt.Fprintf(&b, "- %s\n", point)
	}
	fmt.Fprintf(&b, "\nSUGGESTED ANGLE:\n%s\n\nUSER PROFILE:\n", topic.SuggestedAngle)
	fmt.Fprintf(&b, "- Focus: %s\n", strings.Join(profile.FocusAreas, ", "))
	fmt.Fprintf(&b, "- Audience: %s\n", profile.TargetAudience)
	fmt.Fprintf(&b, "- Tone: %s\n", profile.Tone)
	fmt.Fprintf(&b, "- Goals: %s\n", strings.Join(profile.ContentGoals, ", "))
	fmt.Fprintf(&b, "\nUSER INPUT: %s\n", steering)
	b.WriteString(`
Please help draft a post that:
1. Hooks the reader in the first line
2. Provides valuable insights backed by data
3. Offers actionable takeaways
4. Maintains the profile's tone
5. Is ~150-250 words
6. Ends with a thought-provoking question or call-to-action

Include your reasoning about the approach you're taking.`)
	return b.String()
}
