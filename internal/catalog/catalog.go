// Package catalog manages the reference bank of real PPTX templates the
// generator can point at. Uploaded templates live in sqlite plus a templates
// dir; an optional external dir on disk is scanned into the listing.
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"slidedeck/internal/extract"
)

// SlideLayout tags one slide of a template with a layout type.
type SlideLayout struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
}

// Template is one catalog entry.
type Template struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Filename     string        `json:"filename"`
	SlideLayouts []SlideLayout `json:"slideLayouts"`
	Tags         []string      `json:"tags"`
	Source       string        `json:"source"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Service manages catalog entries
type Service struct {
	database     *sql.DB
	templatesDir string
	externalDir  string
}

// NewService creates a new catalog service. externalDir may be empty.
func NewService(database *sql.DB, templatesDir, externalDir string) *Service {
	return &Service{
		database:     database,
		templatesDir: templatesDir,
		externalDir:  externalDir,
	}
}

// TemplatesDir returns where uploaded template files are stored.
func (s *Service) TemplatesDir() string {
	return s.templatesDir
}

var unsafeFileRe = regexp.MustCompile(`[^\w.-]`)

// StoreTemplateFile writes an uploaded .pptx under the templates dir with a
// sanitized name and returns that name.
func (s *Service) StoreTemplateFile(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.templatesDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create templates directory: %w", err)
	}
	safe := unsafeFileRe.ReplaceAllString(originalName, "_")
	if safe == "" {
		safe = "template"
	}
	if !strings.HasSuffix(strings.ToLower(safe), ".pptx") {
		safe += ".pptx"
	}
	if err := os.WriteFile(filepath.Join(s.templatesDir, safe), data, 0644); err != nil {
		return "", fmt.Errorf("failed to store template file: %w", err)
	}
	return safe, nil
}

// DeriveLayouts tags template slides from their extracted text: the first
// slide is assumed to be the hero, the rest plain titles.
func DeriveLayouts(slideTexts []string) []SlideLayout {
	layouts := make([]SlideLayout, len(slideTexts))
	for i := range slideTexts {
		layoutType := "title"
		if i == 0 {
			layoutType = "hero"
		}
		layouts[i] = SlideLayout{Index: i, Type: layoutType}
	}
	return layouts
}

// Add upserts a template by id. An empty id is derived from the filename.
func (s *Service) Add(entry Template) (*Template, error) {
	if entry.ID == "" {
		base := strings.TrimSuffix(entry.Filename, filepath.Ext(entry.Filename))
		entry.ID = strings.Join(strings.Fields(base), "-")
	}
	if entry.Name == "" {
		entry.Name = entry.ID
	}
	if entry.Source == "" {
		entry.Source = "internal"
	}
	if entry.SlideLayouts == nil {
		entry.SlideLayouts = []SlideLayout{}
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	layoutsJSON, err := json.Marshal(entry.SlideLayouts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode slide layouts: %w", err)
	}
	tagsJSON, err := json.Marshal(entry.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	existing, err := s.getInternal(entry.ID)
	if err == nil && existing != nil {
		query := `UPDATE templates SET name = ?, description = ?, filename = ?, slide_layouts = ?, tags = ?, source = ? WHERE id = ?`
		if _, err := s.database.Exec(query, entry.Name, entry.Description, entry.Filename, string(layoutsJSON), string(tagsJSON), entry.Source, entry.ID); err != nil {
			return nil, fmt.Errorf("failed to update template: %w", err)
		}
		log.Printf("Template updated: id=%s, file=%s", entry.ID, entry.Filename)
		return s.getInternal(entry.ID)
	}

	entry.CreatedAt = time.Now()
	query := `INSERT INTO templates (id, name, description, filename, slide_layouts, tags, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.database.Exec(query, entry.ID, entry.Name, entry.Description, entry.Filename, string(layoutsJSON), string(tagsJSON), entry.Source, entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert template: %w", err)
	}
	log.Printf("Template added: id=%s, file=%s", entry.ID, entry.Filename)
	return s.getInternal(entry.ID)
}

func (s *Service) getInternal(id string) (*Template, error) {
	query := `SELECT id, name, description, filename, slide_layouts, tags, source, created_at
		FROM templates WHERE id = ?`

	var t Template
	var layoutsJSON, tagsJSON string
	err := s.database.QueryRow(query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Filename,
		&layoutsJSON,
		&tagsJSON,
		&t.Source,
		&t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query template: %w", err)
	}
	decodeTemplateJSON(&t, layoutsJSON, tagsJSON)
	return &t, nil
}

func decodeTemplateJSON(t *Template, layoutsJSON, tagsJSON string) {
	if err := json.Unmarshal([]byte(layoutsJSON), &t.SlideLayouts); err != nil {
		t.SlideLayouts = []SlideLayout{}
	}
	if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
		t.Tags = []string{}
	}
}

// GetAll returns the stored templates plus any found in the external dir.
func (s *Service) GetAll() ([]*Template, error) {
	query := `SELECT id, name, description, filename, slide_layouts, tags, source, created_at
		FROM templates ORDER BY created_at DESC`

	rows, err := s.database.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		var t Template
		var layoutsJSON, tagsJSON string
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.Filename,
			&layoutsJSON,
			&tagsJSON,
			&t.Source,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		decodeTemplateJSON(&t, layoutsJSON, tagsJSON)
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates = append(templates, s.scanExternal(templates)...)
	return templates, nil
}

// GetByID resolves a template by id across stored and external entries.
func (s *Service) GetByID(id string) (*Template, error) {
	if t, err := s.getInternal(id); err == nil {
		return t, nil
	}
	for _, t := range s.scanExternal(nil) {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("template not found: %s", id)
}

var unsafeIDRe = regexp.MustCompile(`[^\w-]+`)
var dashRuns = regexp.MustCompile(`-+`)

// scanExternal lists .pptx files of the external dir as catalog entries. For
// each file a sidecar .json with the same base name supplies metadata;
// otherwise layouts and a description come from the file's slide text.
func (s *Service) scanExternal(existing []*Template) []*Template {
	if s.externalDir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.externalDir)
	if err != nil {
		return nil
	}

	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.ID] = true
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pptx") {
			continue
		}
		baseName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		id := dashRuns.ReplaceAllString(unsafeIDRe.ReplaceAllString(baseName, "-"), "-")
		if id == "" || id == "-" {
			id = "template"
		}
		if known[id] {
			id = "ext-" + id
		}
		known[id] = true

		t := &Template{
			ID:           id,
			Name:         baseName,
			Description:  "Template from the external folder (use for presentations matching its style).",
			Filename:     entry.Name(),
			SlideLayouts: []SlideLayout{},
			Tags:         []string{"external"},
			Source:       "external",
		}

		if meta, err := os.ReadFile(filepath.Join(s.externalDir, baseName+".json")); err == nil {
			var sidecar struct {
				Name         string        `json:"name"`
				Description  string        `json:"description"`
				SlideLayouts []SlideLayout `json:"slideLayouts"`
				Tags         []string      `json:"tags"`
			}
			if err := json.Unmarshal(meta, &sidecar); err == nil {
				if sidecar.Name != "" {
					t.Name = sidecar.Name
				}
				if sidecar.Description != "" {
					t.Description = sidecar.Description
				}
				if len(sidecar.SlideLayouts) > 0 {
					t.SlideLayouts = sidecar.SlideLayouts
				}
				if len(sidecar.Tags) > 0 {
					t.Tags = sidecar.Tags
				}
			}
		}

		if len(t.SlideLayouts) == 0 {
			if data, err := os.ReadFile(filepath.Join(s.externalDir, entry.Name())); err == nil {
				if texts, err := extract.PptxSlideTexts(data); err == nil {
					t.SlideLayouts = DeriveLayouts(texts)
					if len(texts) > 0 && texts[0] != "" {
						first := texts[0]
						if len(first) > 80 {
							first = first[:80] + "..."
						}
						t.Description = "Template: " + first
					}
				}
			}
		}
		templates = append(templates, t)
	}
	return templates
}

// PromptDigest renders the catalog as text for the generation system prompt.
func (s *Service) PromptDigest() string {
	templates, err := s.GetAll()
	if err != nil {
		log.Printf("Failed to load catalog for prompt: %v", err)
		templates = nil
	}
	if len(templates) == 0 {
		return `---- REFERENCE BANK (PPTX TEMPLATES) ----
There are no PPTX templates in the bank yet. Drop .pptx files in the templates dir, set EXTERNAL_TEMPLATES_PATH to a folder on disk, or use POST /api/reference-library/templates.`
	}

	lines := make([]string, 0, len(templates))
	for _, t := range templates {
		layoutsText := "(untyped slides)"
		if len(t.SlideLayouts) > 0 {
			types := make([]string, len(t.SlideLayouts))
			for i, sl := range t.SlideLayouts {
				types[i] = sl.Type
			}
			layoutsText = strings.Join(types, ", ")
		}
		tagsText := ""
		if len(t.Tags) > 0 {
			tagsText = " Tags: " + strings.Join(t.Tags, ", ") + "."
		}
		src := ""
		if t.Source == "external" {
			src = " [external folder]"
		}
		lines = append(lines, fmt.Sprintf("- **%s** (id: %s, file: %s)%s: %s Layouts: %s.%s",
			t.Name, t.ID, t.Filename, src, t.Description, layoutsText, tagsText))
	}

	return `---- REFERENCE BANK (REAL PPTX TEMPLATES) ----
The tool has a reference bank of PPTX templates (internal and/or an external folder). USE these resources to build modern presentations.

AVAILABLE TEMPLATES (reference them by id):
` + strings.Join(lines, "\n") + `

When generating the JSON, you MUST include "templateId" with one of the ids listed above. Pick the template that best fits the topic and the user's request (use the tags and the description).`
}
