package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-sonnet-20241022"
	anthropicVersion        = "2023-06-01"
)

type anthropicProvider struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func newAnthropic(creds Credentials, client *http.Client) *anthropicProvider {
	p := &anthropicProvider{
		model:   creds.Model,
		apiKey:  creds.APIKey,
		baseURL: strings.TrimRight(creds.BaseURL, "/"),
		client:  client,
	}
	if p.model == "" {
		p.model = defaultAnthropicModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultAnthropicBaseURL
	}
	return p
}

func (p *anthropicProvider) ID() string    { return "anthropic" }
func (p *anthropicProvider) Name() string  { return "Anthropic (Claude)" }
func (p *anthropicProvider) Model() string { return p.model }

func (p *anthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	content := []map[string]any{
		{"type": "text", "text": req.User},
	}
	if len(req.ImageData) > 0 && req.ImageMIME != "" {
		content = append(content, map[string]any{
			"type": "image",
			"source": map[string]any{
				"type":       "base64",
				"media_type": req.ImageMIME,
				"data":       base64.StdEncoding.EncodeToString(req.ImageData),
			},
		})
	}

	body := map[string]any{
		"model":      p.model,
		"max_tokens": 4096,
		"system":     req.System,
		"messages": []map[string]any{
			{"role": "user", "content": content},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request to anthropic failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read anthropic response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError("anthropic", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode anthropic response: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
