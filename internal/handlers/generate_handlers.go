package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"slidedeck/internal/catalog"
	"slidedeck/internal/extract"
	"slidedeck/internal/llm"
	"slidedeck/internal/models"
	"slidedeck/internal/normalize"
	"slidedeck/internal/services"
)

// MaxUploadBytes caps attachment uploads on the generate endpoint.
const MaxUploadBytes = 15 << 20

// Completer is the slice of llm.Registry the generate handler needs.
type Completer interface {
	Available() []llm.Info
	Complete(ctx context.Context, providerID string, req llm.Request) (string, error)
}

// GenerateHandler handles deck generation requests
type GenerateHandler struct {
	completer Completer
	store     *services.SessionStore
	catalog   *catalog.Service
	limiter   *rate.Limiter
}

// NewGenerateHandler creates a new generate handler. ratePerMinute bounds how
// many generations the server accepts; zero disables the limit.
func NewGenerateHandler(completer Completer, store *services.SessionStore, cat *catalog.Service, ratePerMinute int) *GenerateHandler {
	var limiter *rate.Limiter
	if ratePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60), ratePerMinute)
	}
	return &GenerateHandler{
		completer: completer,
		store:     store,
		catalog:   cat,
		limiter:   limiter,
	}
}

// GenerateRequest is the JSON request shape; multipart requests carry the
// same fields as form values plus an optional "file" part.
type GenerateRequest struct {
	Description string `json:"description"`
	DeckTitle   string `json:"deckTitle,omitempty"`
	Provider    string `json:"provider,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
}

// GenerateResponse carries the normalized deck.
type GenerateResponse struct {
	Success   bool        `json:"success"`
	Deck      models.Deck `json:"deck"`
	SessionID string      `json:"sessionId,omitempty"`
}

// Generate runs one deck generation
// POST /api/generate
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow() {
		http.Error(w, "too many generation requests, slow down", http.StatusTooManyRequests)
		return
	}

	req, attachment, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	var digest string
	if h.catalog != nil {
		digest = h.catalog.PromptDigest()
	}

	text, err := h.completer.Complete(r.Context(), req.Provider, llm.Request{
		System:    llm.SystemPrompt(digest),
		User:      llm.UserMessage(req.Description, req.DeckTitle, attachment.Text),
		ImageData: attachment.ImageData,
		ImageMIME: attachment.ImageMIME,
	})
	if err != nil {
		log.Printf("Generation failed: %v", err)
		http.Error(w, err.Error(), completionStatus(err))
		return
	}

	deck, err := normalize.Deck(text)
	if err != nil {
		log.Printf("Generation produced unusable output: %v", err)
		switch {
		case errors.Is(err, normalize.ErrNoValidSlides):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	// The session is touched only after the whole pipeline succeeded.
	resp := GenerateResponse{Success: true, Deck: deck}
	if req.SessionID != "" {
		sess, found := h.store.Get(req.SessionID)
		if !found {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		sess.ApplyGenerated(deck)
		resp.SessionID = req.SessionID
	}

	log.Printf("Deck generated: slides=%d, title=%q", len(deck.Slides), deck.Title)
	writeJSON(w, http.StatusOK, resp)
}

func completionStatus(err error) int {
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		return http.StatusServiceUnavailable
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, llm.ErrProviderTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, llm.ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseRequest reads a JSON or multipart generate request. On multipart the
// optional file part is converted into prompt context.
func (h *GenerateHandler) parseRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, extract.Attachment, bool) {
	var req GenerateRequest
	var attachment extract.Attachment

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType != "multipart/form-data" {
		if err := json.NewDecoder(io.LimitReader(r.Body, MaxUploadBytes)).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return req, attachment, false
		}
		return req, attachment, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		http.Error(w, "file too large or malformed form", http.StatusBadRequest)
		return req, attachment, false
	}
	req.Description = r.FormValue("description")
	req.DeckTitle = r.FormValue("deckTitle")
	req.Provider = r.FormValue("provider")
	req.SessionID = r.FormValue("sessionId")

	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return req, attachment, true
	}
	if err != nil {
		http.Error(w, "failed to read attached file", http.StatusBadRequest)
		return req, attachment, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read attached file", http.StatusBadRequest)
		return req, attachment, false
	}

	attachment, err = extract.Context(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		log.Printf("Attachment extraction failed for %s: %v", header.Filename, err)
		http.Error(w, "could not extract content from the attached file", http.StatusBadRequest)
		return req, attachment, false
	}
	return req, attachment, true
}

// ProvidersResponse lists the configured completion providers.
type ProvidersResponse struct {
	Providers []llm.Info `json:"providers"`
}

// ListProviders lists the configured completion providers
// GET /api/providers
func (h *GenerateHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: h.completer.Available()})
}

// Health answers liveness probes
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
