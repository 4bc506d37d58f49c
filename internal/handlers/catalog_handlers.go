package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"slidedeck/internal/catalog"
	"slidedeck/internal/extract"
)

// CatalogHandler handles the reference template library
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
	}
}

// CatalogResponse lists the available templates.
type CatalogResponse struct {
	Templates []*catalog.Template `json:"templates"`
}

// ListTemplates lists the template catalog
// GET /api/reference-library/catalog
func (h *CatalogHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.catalog.GetAll()
	if err != nil {
		log.Printf("Failed to list templates: %v", err)
		http.Error(w, "failed to list templates", http.StatusInternalServerError)
		return
	}
	if templates == nil {
		templates = []*catalog.Template{}
	}
	writeJSON(w, http.StatusOK, CatalogResponse{Templates: templates})
}

// UploadTemplateResponse returns the stored catalog entry.
type UploadTemplateResponse struct {
	Success  bool              `json:"success"`
	Template *catalog.Template `json:"template"`
}

// UploadTemplate stores an uploaded .pptx in the template bank
// POST /api/reference-library/templates
func (h *CatalogHandler) UploadTemplate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		http.Error(w, "file too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "a .pptx file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pptx") {
		http.Error(w, "only .pptx templates are accepted", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read the uploaded file", http.StatusBadRequest)
		return
	}

	texts, err := extract.PptxSlideTexts(data)
	if err != nil {
		http.Error(w, "the uploaded file is not a valid .pptx", http.StatusBadRequest)
		return
	}

	filename, err := h.catalog.StoreTemplateFile(header.Filename, data)
	if err != nil {
		log.Printf("Failed to store template file: %v", err)
		http.Error(w, "failed to store the template", http.StatusInternalServerError)
		return
	}

	entry := catalog.Template{
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		Filename:     filename,
		SlideLayouts: catalog.DeriveLayouts(texts),
	}
	if tags := r.FormValue("tags"); tags != "" {
		var parsed []string
		if err := json.Unmarshal([]byte(tags), &parsed); err == nil {
			entry.Tags = parsed
		} else {
			for _, tag := range strings.Split(tags, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					entry.Tags = append(entry.Tags, tag)
				}
			}
		}
	}

	stored, err := h.catalog.Add(entry)
	if err != nil {
		log.Printf("Failed to add template: %v", err)
		http.Error(w, "failed to add the template", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, UploadTemplateResponse{Success: true, Template: stored})
}
