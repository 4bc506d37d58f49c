// Package layouts is the single source of truth for the closed set of slide
// layouts, their default content, and the icon allowlist. The normalizer,
// the edit session, and both renderers all read from here.
package layouts

import "slidedeck/internal/models"

// Icon defaults applied when an element carries no icon or an unknown one.
const (
	DefaultBulletIcon   = "circle"
	DefaultTimelineIcon = "calendar"
)

// Icons is the closed set of icon identifiers the renderer can resolve to a
// glyph. Unknown names never pass through verbatim.
var Icons = []string{
	"calendar", "flag", "award", "book-open", "landmark", "trending-up",
	"users", "star", "zap", "target", "heart", "briefcase", "globe",
	"building", "graduation-cap", "trophy", "circle", "map-pin",
}

var iconSet = func() map[string]bool {
	m := make(map[string]bool, len(Icons))
	for _, ic := range Icons {
		m[ic] = true
	}
	return m
}()

// IsKnownIcon reports whether name is in the icon allowlist.
func IsKnownIcon(name string) bool {
	return iconSet[name]
}

// Info describes one layout for UI listings.
type Info struct {
	ID   models.Layout `json:"id"`
	Name string        `json:"name"`
}

// All lists the layouts in display order.
var All = []Info{
	{models.LayoutHero, "Hero"},
	{models.LayoutTitle, "Title"},
	{models.LayoutTitleSubtitle, "Title + subtitle"},
	{models.LayoutBullet, "Bulleted list"},
	{models.LayoutTimeline, "Timeline"},
	{models.LayoutTwoColumn, "Two columns"},
	{models.LayoutBigNumber, "Big number"},
	{models.LayoutStatsRow, "Three stats"},
	{models.LayoutQuote, "Quote"},
	{models.LayoutSection, "Section"},
	{models.LayoutImageText, "Image + text"},
}

// IsKnown reports whether id names one of the fixed layouts.
func IsKnown(id models.Layout) bool {
	return models.NewContent(id) != nil
}

// DefaultContent returns a fresh deep copy of the layout's default content.
// Callers never share mutable sub-objects. Unknown layouts fall back to the
// "title" defaults; the normalizer guarantees unknown ids never reach a Slide.
func DefaultContent(id models.Layout) models.Content {
	switch id {
	case models.LayoutHero:
		return &models.HeroContent{Title: "A bold opening title", Subtitle: "Subtitle or tagline"}
	case models.LayoutTitleSubtitle:
		return &models.TitleSubtitleContent{Title: "Title", Subtitle: "Subtitle or short description"}
	case models.LayoutBullet:
		return &models.BulletContent{
			Title: "List title",
			Items: []models.BulletItem{
				{Text: "First point", Icon: DefaultBulletIcon},
				{Text: "Second point", Icon: DefaultBulletIcon},
				{Text: "Third point", Icon: DefaultBulletIcon},
			},
		}
	case models.LayoutTimeline:
		return &models.TimelineContent{
			Title: "Key events",
			Events: []models.TimelineEvent{
				{Year: "1822", Text: "Independence declared", Icon: "flag"},
				{Year: "1824", Text: "First constitution", Icon: "book-open"},
			},
		}
	case models.LayoutTwoColumn:
		return &models.TwoColumnContent{Left: "Left column.", Right: "Right column."}
	case models.LayoutBigNumber:
		return &models.BigNumberContent{Number: "42", Label: "Metric or description"}
	case models.LayoutStatsRow:
		return &models.StatsRowContent{
			Stat1: "99%", Label1: "Satisfaction",
			Stat2: "10x", Label2: "Growth",
			Stat3: "24h", Label3: "Support",
		}
	case models.LayoutQuote:
		return &models.QuoteContent{Text: "An inspiring quote.", Author: "— Author name"}
	case models.LayoutSection:
		return &models.SectionContent{Title: "Section name"}
	case models.LayoutImageText:
		return &models.ImageTextContent{
			Title:           "Title",
			Body:            "Text or description.",
			ImageSuggestion: "Image suggestion",
		}
	case models.LayoutTitle:
		return &models.TitleContent{Title: "Slide title"}
	}
	return &models.TitleContent{Title: "Slide title"}
}

// DefaultSlide returns the built-in slide new decks and addSlide start from.
func DefaultSlide() models.Slide {
	return models.Slide{
		Layout:           models.LayoutTitle,
		Content:          DefaultContent(models.LayoutTitle),
		Transition:       models.TransitionFade,
		ElementAnimation: models.AnimationFade,
	}
}

// DefaultDeck returns the minimal deck an edit session opens with.
func DefaultDeck() models.Deck {
	bullet := models.Slide{
		Layout:           models.LayoutBullet,
		Content:          DefaultContent(models.LayoutBullet),
		Transition:       models.TransitionFade,
		ElementAnimation: models.AnimationFade,
	}
	return models.Deck{
		Title:  "My Presentation",
		Slides: []models.Slide{DefaultSlide(), bullet},
	}
}
