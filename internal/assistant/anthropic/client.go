// Package anthropic implements the generation provider over the Anthropic
// Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/topiqhq/topiq/internal/assistant/domain"
	"github.com/topiqhq/topiq/internal/config"
)

const (
	apiURL         = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"
	maxTokens      = 4000
	webSearchTool  = "web_search_20250305"
	maxSearchUses  = 5
	requestTimeout = 120 * time.Second
)

type messageRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	Messages  []requestMessage `json:"messages"`
	Tools     []tool           `json:"tools,omitempty"`
}

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type tool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type client struct {
	apiKey string
	model  string
	client *http.Client
}

// New builds the provider from config. An empty API key yields a client
// whose calls fail with ErrNotConfigured.
func New(cfg config.Config) domain.Provider {
	return &client{
		apiKey: strings.TrimSpace(cfg.AnthropicAPIKey),
		model:  cfg.AnthropicModel,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Generate sends one user message and concatenates the text blocks of the
// reply. Non-text blocks (tool use, search results) are skipped.
func (c *client) Generate(ctx context.Context, prompt string, webSearch bool) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrNotConfigured
	}

	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []requestMessage{{Role: "user", Content: prompt}},
	}
	if webSearch {
		reqBody.Tools = []tool{{Type: webSearchTool, Name: "web_search", MaxUses: maxSearchUses}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error.Message == "" {
			return "", fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrUpstream, apiErr.Error.Message)
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
