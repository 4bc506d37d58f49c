package render

import (
	"strings"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

// ReadBack extracts edited content from a rendered tree. Fields whose node is
// missing keep their previous value, so a partially damaged tree never wipes
// content. Lists are rebuilt from the tree in document order.
func ReadBack(root *Node, slide models.Slide) models.Content {
	content := slide.Content
	if content == nil {
		content = layouts.DefaultContent(slide.Layout)
	}
	out := content.Clone()
	if root == nil {
		return out
	}

	switch c := out.(type) {
	case *models.HeroContent:
		readField(root, "title", &c.Title)
		readField(root, "subtitle", &c.Subtitle)
	case *models.TitleContent:
		readField(root, "title", &c.Title)
	case *models.TitleSubtitleContent:
		readField(root, "title", &c.Title)
		readField(root, "subtitle", &c.Subtitle)
	case *models.BulletContent:
		readField(root, "title", &c.Title)
		if list := root.FindClass("slide-bullets"); list != nil {
			c.Items = readBulletItems(list.FindFields("item"))
		}
	case *models.TimelineContent:
		readField(root, "title", &c.Title)
		if track := root.FindClass("timeline-track"); track != nil {
			c.Events = readTimelineEvents(track.FindFields("event"))
		}
	case *models.TwoColumnContent:
		readField(root, "left", &c.Left)
		readField(root, "right", &c.Right)
	case *models.BigNumberContent:
		readField(root, "number", &c.Number)
		readField(root, "label", &c.Label)
	case *models.StatsRowContent:
		readField(root, "stat1", &c.Stat1)
		readField(root, "label1", &c.Label1)
		readField(root, "stat2", &c.Stat2)
		readField(root, "label2", &c.Label2)
		readField(root, "stat3", &c.Stat3)
		readField(root, "label3", &c.Label3)
	case *models.QuoteContent:
		readField(root, "quote-text", &c.Text)
		readField(root, "quote-author", &c.Author)
	case *models.SectionContent:
		readField(root, "title", &c.Title)
	case *models.ImageTextContent:
		readField(root, "title", &c.Title)
		readField(root, "body", &c.Body)
		if input := root.FindField("imageUrl"); input != nil {
			value, _ := input.Attr("value")
			c.ImageURL = strings.TrimSpace(value)
		}
		readField(root, "imageSuggestion", &c.ImageSuggestion)
	}
	return out
}

func readField(root *Node, field string, dst *string) {
	if node := root.FindField(field); node != nil {
		*dst = strings.TrimSpace(node.Text)
	}
}

func readBulletItems(nodes []*Node) []models.BulletItem {
	items := make([]models.BulletItem, 0, len(nodes))
	for _, li := range nodes {
		item := models.BulletItem{Icon: layouts.DefaultBulletIcon}
		if icon, ok := li.Attr("data-icon"); ok && layouts.IsKnownIcon(icon) {
			item.Icon = icon
		}
		if textEl := li.FindClass("bullet-text"); textEl != nil {
			item.Text = strings.TrimSpace(textEl.Text)
		}
		items = append(items, item)
	}
	return items
}

func readTimelineEvents(nodes []*Node) []models.TimelineEvent {
	events := make([]models.TimelineEvent, 0, len(nodes))
	for _, div := range nodes {
		ev := models.TimelineEvent{Icon: layouts.DefaultTimelineIcon}
		if icon, ok := div.Attr("data-icon"); ok && layouts.IsKnownIcon(icon) {
			ev.Icon = icon
		}
		if year := div.FindField("year"); year != nil {
			ev.Year = strings.TrimSpace(year.Text)
		}
		if body := div.FindField("text"); body != nil {
			ev.Text = strings.TrimSpace(body.Text)
		}
		if ev.Year == "" && ev.Text == "" {
			continue
		}
		events = append(events, ev)
	}
	return events
}
