package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultGoogleBaseURL = "https://generativelanguage.googleapis.com"
	defaultGoogleModel   = "gemini-1.5-flash"

	// Gemini has no separate system role here; the system text leads the
	// content with an explicit output reminder.
	googleSystemSuffix = "Respond only with the presentation JSON (deckTitle, templateId, slides)."
)

type googleProvider struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func newGoogle(creds Credentials, client *http.Client) *googleProvider {
	p := &googleProvider{
		model:   creds.Model,
		apiKey:  creds.APIKey,
		baseURL: strings.TrimRight(creds.BaseURL, "/"),
		client:  client,
	}
	if p.model == "" {
		p.model = defaultGoogleModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultGoogleBaseURL
	}
	return p
}

func (p *googleProvider) ID() string    { return "google" }
func (p *googleProvider) Name() string  { return "Google (Gemini)" }
func (p *googleProvider) Model() string { return p.model }

func (p *googleProvider) Complete(ctx context.Context, req Request) (string, error) {
	parts := []map[string]any{
		{"text": req.System + "\n\n" + googleSystemSuffix},
		{"text": req.User},
	}
	if len(req.ImageData) > 0 && req.ImageMIME != "" {
		parts = append(parts, map[string]any{
			"inline_data": map[string]any{
				"mime_type": req.ImageMIME,
				"data":      base64.StdEncoding.EncodeToString(req.ImageData),
			},
		})
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, url.PathEscape(p.model), url.QueryEscape(p.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request to google failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read google response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError("google", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode google response: %w", err)
	}
	var sb strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
