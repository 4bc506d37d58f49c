package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"slidedeck/internal/export"
	"slidedeck/internal/models"
	"slidedeck/internal/services"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ExportHandler handles PPTX downloads
type ExportHandler struct {
	store *services.SessionStore
}

// NewExportHandler creates a new export handler
func NewExportHandler(store *services.SessionStore) *ExportHandler {
	return &ExportHandler{
		store: store,
	}
}

// ExportDeck converts a posted deck to a PPTX download
// POST /api/export-pptx
func (h *ExportHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	var deck models.Deck
	if err := json.NewDecoder(r.Body).Decode(&deck); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.writePptx(w, deck)
}

// ExportSession converts a session's current deck to a PPTX download
// GET /api/session/{id}/export
func (h *ExportHandler) ExportSession(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}
	h.writePptx(w, sess.Deck())
}

func (h *ExportHandler) writePptx(w http.ResponseWriter, deck models.Deck) {
	data, err := export.Pptx(deck)
	if err != nil {
		if errors.Is(err, export.ErrNoSlides) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to export pptx: %v", err)
		http.Error(w, "failed to build the PowerPoint file", http.StatusInternalServerError)
		return
	}

	name := export.FileName(deck.Title)
	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write pptx download: %v", err)
	}
}
