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
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	openRouterBaseURL    = "https://openrouter.ai/api/v1"

	defaultOpenAIModel     = "gpt-4o-mini"
	defaultOpenRouterModel = "openrouter/free"

	// imageNote is appended to the user text when an image rides along.
	imageNote = "[Attached image: describe it and use it as reference. Generate the presentation JSON.]"
)

// openAIProvider speaks the OpenAI chat completions API. A custom base URL
// also covers Ollama and OpenRouter-compatible endpoints; the provider id and
// display name follow the base URL so the UI does not show duplicates.
type openAIProvider struct {
	id      string
	name    string
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAI(creds Credentials, client *http.Client) *openAIProvider {
	p := &openAIProvider{
		id:      "openai",
		name:    "OpenAI (GPT)",
		model:   creds.Model,
		apiKey:  creds.APIKey,
		baseURL: strings.TrimRight(creds.BaseURL, "/"),
		client:  client,
	}
	if p.model == "" {
		p.model = defaultOpenAIModel
	}
	switch {
	case p.baseURL == "":
		p.baseURL = defaultOpenAIBaseURL
	case strings.Contains(strings.ToLower(p.baseURL), "openrouter"):
		p.id = "openrouter-custom"
		p.name = "OpenRouter"
	default:
		p.id = "ollama"
		p.name = "Ollama"
	}
	return p
}

func newOpenRouter(creds Credentials, client *http.Client) *openAIProvider {
	p := &openAIProvider{
		id:      "openrouter",
		name:    "OpenRouter (free)",
		model:   creds.Model,
		apiKey:  creds.APIKey,
		baseURL: strings.TrimRight(creds.BaseURL, "/"),
		client:  client,
	}
	if p.model == "" {
		p.model = defaultOpenRouterModel
	}
	if p.baseURL == "" {
		p.baseURL = openRouterBaseURL
	}
	return p
}

func (p *openAIProvider) ID() string    { return p.id }
func (p *openAIProvider) Name() string  { return p.name }
func (p *openAIProvider) Model() string { return p.model }

func (p *openAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	var userContent any = req.User
	if len(req.ImageData) > 0 && req.ImageMIME != "" {
		dataURL := fmt.Sprintf("data:%s;base64,%s", req.ImageMIME, base64.StdEncoding.EncodeToString(req.ImageData))
		userContent = []map[string]any{
			{"type": "text", "text": req.User + "\n\n" + imageNote},
			{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
		}
	}

	body := map[string]any{
		"model": p.model,
		"messages": []map[string]any{
			{"role": "system", "content": req.System},
			{"role": "user", "content": userContent},
		},
		"temperature": 0.7,
		"max_tokens":  4096,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", p.id, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", p.id, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(p.id, resp.StatusCode, string(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", p.id, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Choices[0].Message.Content, nil
}
