package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIStub(t *testing.T, reply string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": reply}},
			},
		})
	}))
}

func TestRegistryAvailablePriorityOrder(t *testing.T) {
	r := NewRegistry(Options{
		OpenAI:     Credentials{APIKey: "k1"},
		OpenRouter: Credentials{APIKey: "k2"},
		Anthropic:  Credentials{APIKey: "k3"},
		Google:     Credentials{APIKey: "k4"},
	})
	infos := r.Available()
	require.Len(t, infos, 4)
	assert.Equal(t, "openai", infos[0].ID)
	assert.Equal(t, "openrouter", infos[1].ID)
	assert.Equal(t, "anthropic", infos[2].ID)
	assert.Equal(t, "google", infos[3].ID)
	assert.Equal(t, "gpt-4o-mini", infos[0].Model)
	assert.Equal(t, "openrouter/free", infos[1].Model)
}

func TestOpenAIProviderIDFollowsBaseURL(t *testing.T) {
	plain := NewRegistry(Options{OpenAI: Credentials{APIKey: "k"}})
	assert.Equal(t, "openai", plain.Available()[0].ID)

	router := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: "https://openrouter.ai/api/v1"}})
	assert.Equal(t, "openrouter-custom", router.Available()[0].ID)

	local := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: "http://localhost:11434/v1"}})
	assert.Equal(t, "ollama", local.Available()[0].ID)
	assert.Equal(t, "Ollama", local.Available()[0].Name)
}

func TestCompleteNoProvider(t *testing.T) {
	r := NewRegistry(Options{})
	_, err := r.Complete(context.Background(), "", Request{User: "hi"})
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestCompleteOpenAISendsMessages(t *testing.T) {
	var got map[string]any
	srv := openAIStub(t, "the deck", &got)
	defer srv.Close()

	r := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: srv.URL, Model: "test-model"}})
	text, err := r.Complete(context.Background(), "", Request{System: "sys", User: "make slides"})
	require.NoError(t, err)
	assert.Equal(t, "the deck", text)

	assert.Equal(t, "test-model", got["model"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "sys", system["content"])
	user := messages[1].(map[string]any)
	assert.Equal(t, "make slides", user["content"])
}

func TestCompleteOpenAIImageBecomesDataURL(t *testing.T) {
	var got map[string]any
	srv := openAIStub(t, "ok", &got)
	defer srv.Close()

	r := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: srv.URL}})
	_, err := r.Complete(context.Background(), "", Request{
		User:      "use the logo",
		ImageData: []byte{1, 2, 3},
		ImageMIME: "image/png",
	})
	require.NoError(t, err)

	user := got["messages"].([]any)[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	textPart := parts[0].(map[string]any)
	assert.Contains(t, textPart["text"], "use the logo")
	assert.Contains(t, textPart["text"], "Attached image")
	imagePart := parts[1].(map[string]any)
	imageURL := imagePart["image_url"].(map[string]any)
	assert.Contains(t, imageURL["url"], "data:image/png;base64,")
}

func TestCompleteRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: srv.URL}})
	_, err := r.Complete(context.Background(), "", Request{User: "hi"})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	r := NewRegistry(Options{
		OpenAI:  Credentials{APIKey: "k", BaseURL: srv.URL},
		Timeout: 30 * time.Millisecond,
	})
	_, err := r.Complete(context.Background(), "", Request{User: "hi"})
	assert.ErrorIs(t, err, ErrProviderTimeout)
}

func TestCompleteEmptyResponse(t *testing.T) {
	srv := openAIStub(t, "", nil)
	defer srv.Close()

	r := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: srv.URL}})
	_, err := r.Complete(context.Background(), "", Request{User: "hi"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCompleteAnthropic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sys", body["system"])
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "claude says"},
			},
		})
	}))
	defer srv.Close()

	r := NewRegistry(Options{Anthropic: Credentials{APIKey: "secret", BaseURL: srv.URL}})
	text, err := r.Complete(context.Background(), "anthropic", Request{System: "sys", User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "claude says", text)
}

func TestCompleteGoogle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "gkey", r.URL.Query().Get("key"))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "gemini says"}}}},
			},
		})
	}))
	defer srv.Close()

	r := NewRegistry(Options{Google: Credentials{APIKey: "gkey", BaseURL: srv.URL}})
	text, err := r.Complete(context.Background(), "google", Request{System: "sys", User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "gemini says", text)
}

func TestCompleteUnknownProviderFallsBackToDefault(t *testing.T) {
	srv := openAIStub(t, "default answered", nil)
	defer srv.Close()

	r := NewRegistry(Options{OpenAI: Credentials{APIKey: "k", BaseURL: srv.URL}})
	text, err := r.Complete(context.Background(), "does-not-exist", Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "default answered", text)
}

func TestSystemPromptIncludesCatalogAndSchemas(t *testing.T) {
	prompt := SystemPrompt("REFERENCE CATALOG:\n- corporate: Corporate deck")
	assert.Contains(t, prompt, "REFERENCE CATALOG")
	assert.Contains(t, prompt, `"deckTitle"`)
	assert.Contains(t, prompt, `"timeline"`)
	assert.Contains(t, prompt, "lucide-icon-name")
}

func TestUserMessageBlocks(t *testing.T) {
	plain := UserMessage("About whales", "", "")
	assert.Contains(t, plain, "About whales")
	assert.NotContains(t, plain, "ATTACHED FILE")
	assert.NotContains(t, plain, "Suggested presentation title")

	hinted := UserMessage("About whales", "Whales 101", "Page 1: whales are big")
	assert.Contains(t, hinted, `Suggested presentation title: "Whales 101"`)
	assert.Contains(t, hinted, "ATTACHED FILE")
	assert.Contains(t, hinted, "Page 1: whales are big")
}
