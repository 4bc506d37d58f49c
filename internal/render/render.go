package render

import (
	"fmt"
	"strconv"
	"strings"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

// Mode selects the rendering target.
type Mode int

const (
	// Editable marks text fields contenteditable for the editor canvas.
	Editable Mode = iota
	// ReadOnly strips editing affordances and adds entrance animation
	// attributes for the player.
	ReadOnly
)

// renderer carries the mode through one Render call.
type renderer struct {
	mode Mode
}

// Render builds the HTML tree for one slide. In Editable mode every text
// field carries contenteditable and data-field markers that ReadBack relies
// on; node text always equals the content value exactly, empty fields get a
// data-placeholder hint instead of substituted text.
func Render(slide models.Slide, mode Mode) *Node {
	slide.EnsureAnimations()
	r := renderer{mode: mode}

	var root *Node
	switch c := slide.Content.(type) {
	case *models.HeroContent:
		root = r.hero(c)
	case *models.TitleContent:
		root = r.title(c)
	case *models.TitleSubtitleContent:
		root = r.titleSubtitle(c)
	case *models.BulletContent:
		root = r.bullet(c)
	case *models.TimelineContent:
		root = r.timeline(c)
	case *models.TwoColumnContent:
		root = r.twoColumn(c)
	case *models.BigNumberContent:
		root = r.bigNumber(c)
	case *models.StatsRowContent:
		root = r.statsRow(c)
	case *models.QuoteContent:
		root = r.quote(c)
	case *models.SectionContent:
		root = r.section(c)
	case *models.ImageTextContent:
		root = r.imageText(c)
	default:
		root = r.title(&models.TitleContent{})
	}

	if mode == ReadOnly && slide.ElementAnimation != models.AnimationNone {
		wrap := elem("div", Attr{"class", "slide-animation-wrap element-animation-" + slide.ElementAnimation})
		wrap.add(root)
		return wrap
	}
	return root
}

// fragment groups sibling top-level nodes; it serializes to its children only.
func fragment(children ...*Node) *Node {
	return &Node{Children: children}
}

func (r renderer) field(class, field, value, placeholder string, order int) *Node {
	n := text("div", value, Attr{"class", class}, Attr{"data-field", field})
	r.editable(n, placeholder)
	r.animate(n, order)
	return n
}

func (r renderer) editable(n *Node, placeholder string) {
	if r.mode != Editable {
		return
	}
	n.setAttr("contenteditable", "true")
	if placeholder != "" {
		n.setAttr("data-placeholder", placeholder)
	}
}

// animate stamps the player's staggered entrance attributes.
func (r renderer) animate(n *Node, order int) {
	if r.mode != ReadOnly || order == 0 {
		return
	}
	n.setAttr("data-animate-order", strconv.Itoa(order))
	n.setAttr("style", fmt.Sprintf("animation-delay: %.2fs", float64(order-1)*0.12))
}

func iconGlyph(wrapperClass, icon string) *Node {
	return elem("span", Attr{"class", wrapperClass}).
		add(elem("iconify-icon", Attr{"icon", "lucide:" + icon}))
}

func (r renderer) hero(c *models.HeroContent) *Node {
	return elem("div", Attr{"class", "slide-hero"}).add(
		r.field("slide-hero-title", "title", c.Title, "Title", 1),
		r.field("slide-hero-subtitle", "subtitle", c.Subtitle, "Subtitle", 2),
	)
}

func (r renderer) title(c *models.TitleContent) *Node {
	return r.field("slide-title", "title", c.Title, "Title", 1)
}

func (r renderer) titleSubtitle(c *models.TitleSubtitleContent) *Node {
	return fragment(
		r.field("slide-title", "title", c.Title, "Title", 1),
		r.field("slide-subtitle", "subtitle", c.Subtitle, "Subtitle", 2),
	)
}

func (r renderer) bullet(c *models.BulletContent) *Node {
	list := elem("ul", Attr{"class", "slide-bullets slide-bullets-cards"})
	for i, item := range c.Items {
		icon := item.Icon
		if icon == "" {
			icon = layouts.DefaultBulletIcon
		}
		li := elem("li",
			Attr{"class", "slide-bullet-item"},
			Attr{"data-field", "item"},
			Attr{"data-icon", icon},
		)
		r.animate(li, i+2)
		bulletText := text("span", item.Text, Attr{"class", "bullet-text"})
		r.editable(bulletText, "")
		li.add(iconGlyph("bullet-icon", icon), bulletText)
		list.add(li)
	}
	return fragment(
		r.field("slide-title", "title", c.Title, "Title", 1),
		list,
	)
}

func (r renderer) timeline(c *models.TimelineContent) *Node {
	track := elem("div", Attr{"class", "timeline-track"})
	for i, ev := range c.Events {
		icon := ev.Icon
		if icon == "" {
			icon = layouts.DefaultTimelineIcon
		}
		event := elem("div",
			Attr{"class", "timeline-event"},
			Attr{"data-field", "event"},
			Attr{"data-index", strconv.Itoa(i)},
			Attr{"data-icon", icon},
		)
		r.animate(event, i+2)
		year := text("span", ev.Year, Attr{"class", "timeline-year"}, Attr{"data-field", "year"})
		body := text("span", ev.Text, Attr{"class", "timeline-text"}, Attr{"data-field", "text"})
		r.editable(year, "")
		r.editable(body, "")
		marker := elem("div", Attr{"class", "timeline-marker"}).
			add(elem("iconify-icon", Attr{"icon", "lucide:" + icon}))
		content := elem("div", Attr{"class", "timeline-content"}).add(year, body)
		event.add(marker, content)
		track.add(event)
	}
	return elem("div", Attr{"class", "slide-timeline"}).add(
		r.field("slide-title", "title", c.Title, "Key events", 1),
		track,
	)
}

func (r renderer) twoColumn(c *models.TwoColumnContent) *Node {
	return elem("div", Attr{"class", "slide-two-column"}).add(
		r.field("column", "left", c.Left, "Left column", 1),
		r.field("column", "right", c.Right, "Right column", 2),
	)
}

func (r renderer) bigNumber(c *models.BigNumberContent) *Node {
	return elem("div", Attr{"class", "slide-big-number"}).add(
		r.field("number", "number", c.Number, "0", 1),
		r.field("label", "label", c.Label, "Label", 2),
	)
}

func (r renderer) statsRow(c *models.StatsRowContent) *Node {
	row := elem("div", Attr{"class", "slide-stats-row"})
	stats := []struct {
		value, valueField string
		label, labelField string
	}{
		{c.Stat1, "stat1", c.Label1, "label1"},
		{c.Stat2, "stat2", c.Label2, "label2"},
		{c.Stat3, "stat3", c.Label3, "label3"},
	}
	for i, st := range stats {
		stat := elem("div", Attr{"class", "stat"})
		r.animate(stat, i+1)
		value := text("div", st.value, Attr{"class", "stat-value"}, Attr{"data-field", st.valueField})
		label := text("div", st.label, Attr{"class", "stat-label"}, Attr{"data-field", st.labelField})
		r.editable(value, "")
		r.editable(label, "")
		stat.add(value, label)
		row.add(stat)
	}
	return row
}

func (r renderer) quote(c *models.QuoteContent) *Node {
	return elem("div", Attr{"class", "slide-quote"}).add(
		r.field("quote-text", "quote-text", c.Text, "Quote", 1),
		r.field("quote-author", "quote-author", c.Author, "Author", 2),
	)
}

func (r renderer) section(c *models.SectionContent) *Node {
	return elem("div", Attr{"class", "slide-section"}).add(
		r.field("section-title", "title", c.Title, "Section", 1),
	)
}

func (r renderer) imageText(c *models.ImageTextContent) *Node {
	url := strings.TrimSpace(c.ImageURL)
	var img *Node
	if r.mode == Editable {
		input := elem("input",
			Attr{"type", "text"},
			Attr{"data-field", "imageUrl"},
			Attr{"placeholder", "Image URL"},
			Attr{"value", url},
			Attr{"class", "image-url-input"},
		)
		img = elem("div", Attr{"class", "slide-image-text-editor-img"}).add(input)
	} else if url != "" {
		img = elem("div",
			Attr{"class", "slide-image-text-img"},
			Attr{"style", "background-image:url(" + url + ")"},
		)
	} else {
		placeholder := strings.TrimSpace(c.ImageSuggestion)
		if placeholder == "" {
			placeholder = "Image"
		}
		img = text("div", placeholder, Attr{"class", "slide-image-text-placeholder"})
	}

	content := elem("div", Attr{"class", "slide-image-text-content"})
	r.animate(content, 2)
	title := text("div", c.Title, Attr{"class", "slide-image-text-title"}, Attr{"data-field", "title"})
	body := text("div", c.Body, Attr{"class", "slide-image-text-body"}, Attr{"data-field", "body"})
	r.editable(title, "Title")
	r.editable(body, "Body text")
	content.add(title, body)
	if r.mode == Editable {
		suggestion := text("div", c.ImageSuggestion,
			Attr{"class", "slide-image-suggestion"},
			Attr{"data-field", "imageSuggestion"},
		)
		r.editable(suggestion, "Image suggestion")
		content.add(suggestion)
	}
	return elem("div", Attr{"class", "slide-image-text"}).add(img, content)
}
