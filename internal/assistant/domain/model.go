// Package domain contains the generation-provider contract and the parsed
// suggestion shape.
package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider is the external text-generation collaborator. The reply is
// untrusted free text; callers must parse defensively.
type Provider interface {
	Generate(ctx context.Context, prompt string, webSearch bool) (string, error)
}

// TopicSuggestion is one parsed item from a monitoring reply. Sources keeps
// the provider's own shape — object entries, bare URL strings, whatever the
// reply carried — without validation.
type TopicSuggestion struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	RelevanceScore int             `json:"relevance_score"`
	Sources        json.RawMessage `json:"sources"`
	KeyPoints      []string        `json:"key_points"`
	SuggestedAngle string          `json:"suggested_angle"`
}

var (
	// ErrNotConfigured means no provider credential is set.
	ErrNotConfigured = errors.New("assistant_not_configured")
	// ErrUpstream wraps provider transport or API failures.
	ErrUpstream = errors.New("upstream_error")
)
