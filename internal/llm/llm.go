// Package llm abstracts the completion providers used for deck generation:
// OpenAI (covering Ollama and OpenRouter through a custom base URL), a
// dedicated OpenRouter slot, Anthropic, and Google Gemini. All providers are
// called over raw REST; no provider types escape this package.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNoProvider means no provider has an API key configured.
	ErrNoProvider = errors.New("no completion provider configured")
	// ErrProviderTimeout means the provider did not answer within the
	// request timeout.
	ErrProviderTimeout = errors.New("provider timed out")
	// ErrRateLimited surfaces an upstream 429.
	ErrRateLimited = errors.New("provider rate limited")
	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// DefaultTimeout bounds one completion call end to end.
const DefaultTimeout = 120 * time.Second

// Request is one completion call. ImageData, when set, is attached to the
// user message in the provider's own image encoding.
type Request struct {
	System    string
	User      string
	ImageData []byte
	ImageMIME string
}

// Provider is one configured completion backend.
type Provider interface {
	ID() string
	Name() string
	Model() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Info describes a provider for the provider-selection UI.
type Info struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// Credentials configures one provider slot.
type Credentials struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Options wires the registry from configuration.
type Options struct {
	OpenAI     Credentials
	OpenRouter Credentials
	Anthropic  Credentials
	Google     Credentials
	Timeout    time.Duration
}

// Registry holds the configured providers and resolves which one serves a
// request. The default follows configuration priority: the OpenAI slot first,
// then OpenRouter, Anthropic, Google.
type Registry struct {
	providers []Provider
	timeout   time.Duration
}

// NewRegistry builds the registry from configured credentials. Slots without
// an API key are skipped.
func NewRegistry(opts Options) *Registry {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	r := &Registry{timeout: timeout}
	if opts.OpenAI.APIKey != "" {
		r.providers = append(r.providers, newOpenAI(opts.OpenAI, client))
	}
	if opts.OpenRouter.APIKey != "" {
		r.providers = append(r.providers, newOpenRouter(opts.OpenRouter, client))
	}
	if opts.Anthropic.APIKey != "" {
		r.providers = append(r.providers, newAnthropic(opts.Anthropic, client))
	}
	if opts.Google.APIKey != "" {
		r.providers = append(r.providers, newGoogle(opts.Google, client))
	}
	return r
}

// Available lists the configured providers in priority order.
func (r *Registry) Available() []Info {
	out := make([]Info, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, Info{ID: p.ID(), Name: p.Name(), Model: p.Model()})
	}
	return out
}

// Complete runs one completion on the named provider, or on the default when
// providerID is empty or unknown. The registry's timeout is enforced here.
func (r *Registry) Complete(ctx context.Context, providerID string, req Request) (string, error) {
	provider := r.resolve(providerID)
	if provider == nil {
		return "", ErrNoProvider
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := provider.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrProviderTimeout, provider.ID())
		}
		return "", err
	}
	return text, nil
}

func (r *Registry) resolve(providerID string) Provider {
	for _, p := range r.providers {
		if p.ID() == providerID {
			return p
		}
	}
	if len(r.providers) > 0 {
		return r.providers[0]
	}
	return nil
}

// statusError turns a non-2xx provider reply into an error, tagging 429 so
// handlers can answer with a retry hint.
func statusError(provider string, status int, body string) error {
	err := fmt.Errorf("%s returned status %d: %s", provider, status, body)
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return err
}
