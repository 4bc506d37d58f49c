// Package normalize coerces untrusted JSON-like values (LLM responses,
// imports) into well-formed slides. Unexpected shapes degrade to the layout
// schema defaults; normalization never fails a whole deck over one field.
package normalize

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

var (
	// ErrMalformedResponse means the provider text contained no parseable
	// JSON object.
	ErrMalformedResponse = errors.New("response contains no JSON object")
	// ErrNoValidSlides means the JSON parsed but yielded zero usable slides.
	ErrNoValidSlides = errors.New("no valid slides in response")
)

// FallbackDeckTitle is used when the response carries no usable deckTitle.
const FallbackDeckTitle = "My Presentation"

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)

// Slide converts an arbitrary decoded JSON value into a well-formed slide.
// Returns false when raw is not an object at all (caller drops it).
func Slide(raw any) (models.Slide, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return models.Slide{}, false
	}
	layout := models.LayoutTitle
	if s, isStr := obj["layout"].(string); isStr && layouts.IsKnown(models.Layout(s)) {
		layout = models.Layout(s)
	}
	content, _ := obj["content"].(map[string]any)
	slide := models.Slide{
		Layout:  layout,
		Content: Content(layout, content),
	}
	if t, isStr := obj["transition"].(string); isStr && models.IsTransition(t) {
		slide.Transition = t
	}
	if a, isStr := obj["elementAnimation"].(string); isStr && models.IsElementAnimation(a) {
		slide.ElementAnimation = a
	}
	slide.EnsureAnimations()
	return slide, true
}

// Deck parses a raw provider response into a normalized deck. The text may
// wrap the JSON object in prose; the whole trimmed response is tried first,
// then a balanced-brace scan from the first '{'.
func Deck(responseText string) (models.Deck, error) {
	data, err := extractJSONObject(responseText)
	if err != nil {
		return models.Deck{}, err
	}

	deck := models.Deck{Title: FallbackDeckTitle}
	if title, ok := data["deckTitle"].(string); ok {
		deck.Title = title
	}
	if rawSlides, ok := data["slides"].([]any); ok {
		for _, raw := range rawSlides {
			if slide, ok := Slide(raw); ok {
				deck.Slides = append(deck.Slides, slide)
			}
		}
	}
	if len(deck.Slides) == 0 {
		return models.Deck{}, ErrNoValidSlides
	}
	deck.BrandColors = brandColors(data["brandColors"])
	if id, ok := data["templateId"].(string); ok {
		deck.TemplateID = strings.TrimSpace(id)
	}
	return deck, nil
}

// Content normalizes a raw content object against the layout's schema. Each
// field is computed independently; absent or malformed values fall back to
// the schema default for that field.
func Content(layout models.Layout, raw map[string]any) models.Content {
	defaults := layouts.DefaultContent(layout)
	switch c := defaults.(type) {
	case *models.HeroContent:
		c.Title = stringField(raw, "title", c.Title)
		c.Subtitle = stringField(raw, "subtitle", c.Subtitle)
	case *models.TitleContent:
		c.Title = stringField(raw, "title", c.Title)
	case *models.TitleSubtitleContent:
		c.Title = stringField(raw, "title", c.Title)
		c.Subtitle = stringField(raw, "subtitle", c.Subtitle)
	case *models.BulletContent:
		c.Title = stringField(raw, "title", c.Title)
		c.Items = bulletItems(raw["items"], c.Items)
	case *models.TimelineContent:
		c.Title = stringField(raw, "title", c.Title)
		c.Events = timelineEvents(raw["events"], c.Events)
	case *models.TwoColumnContent:
		c.Left = stringField(raw, "left", c.Left)
		c.Right = stringField(raw, "right", c.Right)
	case *models.BigNumberContent:
		c.Number = stringField(raw, "number", c.Number)
		c.Label = stringField(raw, "label", c.Label)
	case *models.StatsRowContent:
		c.Stat1 = stringField(raw, "stat1", c.Stat1)
		c.Label1 = stringField(raw, "label1", c.Label1)
		c.Stat2 = stringField(raw, "stat2", c.Stat2)
		c.Label2 = stringField(raw, "label2", c.Label2)
		c.Stat3 = stringField(raw, "stat3", c.Stat3)
		c.Label3 = stringField(raw, "label3", c.Label3)
	case *models.QuoteContent:
		c.Text = stringField(raw, "text", c.Text)
		c.Author = stringField(raw, "author", c.Author)
	case *models.SectionContent:
		c.Title = stringField(raw, "title", c.Title)
	case *models.ImageTextContent:
		c.Title = stringField(raw, "title", c.Title)
		c.Body = stringField(raw, "body", c.Body)
		c.ImageURL = stringField(raw, "imageUrl", c.ImageURL)
		c.ImageSuggestion = stringField(raw, "imageSuggestion", c.ImageSuggestion)
	}
	return defaults
}

func brandColors(raw any) *models.BrandColors {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := &models.BrandColors{
		Primary:   hexColor(obj["primary"]),
		Secondary: hexColor(obj["secondary"]),
	}
	if out.Primary == "" && out.Secondary == "" {
		return nil
	}
	return out
}

// hexColor validates a 3-8 hex-digit color; invalid values are dropped
// individually, not the whole brandColors field.
func hexColor(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if !hexColorRe.MatchString(s) {
		return ""
	}
	return s
}

func stringField(raw map[string]any, key, fallback string) string {
	if raw == nil {
		return fallback
	}
	v, present := raw[key]
	if !present || v == nil {
		return fallback
	}
	s, ok := stringify(v)
	if !ok {
		return fallback
	}
	return s
}

// stringify coerces JSON scalars the way the generation prompt expects
// ("42" for 42). Objects and arrays are not coerced.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func bulletItems(raw any, fallback []models.BulletItem) []models.BulletItem {
	list, ok := raw.([]any)
	if !ok {
		return fallback
	}
	items := make([]models.BulletItem, 0, len(list))
	for _, el := range list {
		items = append(items, bulletItem(el))
	}
	return items
}

func bulletItem(el any) models.BulletItem {
	item := models.BulletItem{Icon: layouts.DefaultBulletIcon}
	switch t := el.(type) {
	case map[string]any:
		if text, ok := stringify(t["text"]); ok {
			item.Text = text
		}
		if icon, ok := t["icon"].(string); ok && layouts.IsKnownIcon(icon) {
			item.Icon = icon
		}
	default:
		if text, ok := stringify(el); ok {
			item.Text = text
		}
	}
	return item
}

func timelineEvents(raw any, fallback []models.TimelineEvent) []models.TimelineEvent {
	list, ok := raw.([]any)
	if !ok {
		return fallback
	}
	events := make([]models.TimelineEvent, 0, len(list))
	for _, el := range list {
		ev := timelineEvent(el)
		if ev.Year == "" && ev.Text == "" {
			continue
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return fallback
	}
	return events
}

func timelineEvent(el any) models.TimelineEvent {
	ev := models.TimelineEvent{Icon: layouts.DefaultTimelineIcon}
	switch t := el.(type) {
	case map[string]any:
		if year, ok := stringify(t["year"]); ok {
			ev.Year = year
		}
		if text, ok := stringify(t["text"]); ok {
			ev.Text = text
		} else if title, ok := stringify(t["title"]); ok {
			ev.Text = title
		}
		if icon, ok := t["icon"].(string); ok && layouts.IsKnownIcon(icon) {
			ev.Icon = icon
		}
	default:
		if text, ok := stringify(el); ok {
			ev.Text = text
		}
	}
	return ev
}

// extractJSONObject locates the response's JSON object. Providers sometimes
// wrap the JSON in prose, so after a failed whole-response parse the first
// balanced top-level {...} span is tried.
func extractJSONObject(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	var data map[string]any
	if err := json.Unmarshal([]byte(trimmed), &data); err == nil {
		return data, nil
	}
	span, ok := firstObjectSpan(trimmed)
	if !ok {
		return nil, ErrMalformedResponse
	}
	if err := json.Unmarshal([]byte(span), &data); err != nil {
		return nil, ErrMalformedResponse
	}
	return data, nil
}

// firstObjectSpan returns the first balanced {...} span, tracking string
// literals so braces inside them don't count.
func firstObjectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
