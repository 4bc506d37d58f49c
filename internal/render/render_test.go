package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

func slideFor(layout models.Layout) models.Slide {
	return models.Slide{
		Layout:           layout,
		Content:          layouts.DefaultContent(layout),
		Transition:       models.TransitionFade,
		ElementAnimation: models.AnimationFade,
	}
}

func TestEditableRoundTripAllLayouts(t *testing.T) {
	for _, info := range layouts.All {
		t.Run(string(info.ID), func(t *testing.T) {
			slide := slideFor(info.ID)
			tree := Render(slide, Editable)
			got := ReadBack(tree, slide)
			assert.Equal(t, slide.Content, got)
		})
	}
}

func TestEditableRoundTripEditedBullets(t *testing.T) {
	slide := models.Slide{
		Layout: models.LayoutBullet,
		Content: &models.BulletContent{
			Title: "Agenda",
			Items: []models.BulletItem{
				{Text: "Kickoff", Icon: "zap"},
				{Text: "Budget review", Icon: "briefcase"},
			},
		},
	}
	tree := Render(slide, Editable)
	got := ReadBack(tree, slide).(*models.BulletContent)
	assert.Equal(t, slide.Content, got)
}

func TestReadBackTimelineDropsEmptyEvents(t *testing.T) {
	slide := models.Slide{
		Layout: models.LayoutTimeline,
		Content: &models.TimelineContent{
			Title: "History",
			Events: []models.TimelineEvent{
				{Year: "2001", Text: "Founded", Icon: "flag"},
				{Year: "", Text: "", Icon: "calendar"},
				{Year: "2010", Text: "IPO", Icon: "trending-up"},
			},
		},
	}
	tree := Render(slide, Editable)
	got := ReadBack(tree, slide).(*models.TimelineContent)
	require.Len(t, got.Events, 2)
	assert.Equal(t, "2001", got.Events[0].Year)
	assert.Equal(t, "2010", got.Events[1].Year)
}

func TestReadBackMissingNodeKeepsPriorValue(t *testing.T) {
	slide := models.Slide{
		Layout:  models.LayoutTitleSubtitle,
		Content: &models.TitleSubtitleContent{Title: "Old title", Subtitle: "Old subtitle"},
	}
	// Tree carrying only the title field, as if the subtitle node were lost.
	tree := text("div", "New title", Attr{"data-field", "title"})
	got := ReadBack(tree, slide).(*models.TitleSubtitleContent)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, "Old subtitle", got.Subtitle)
}

func TestReadBackTrimsWhitespace(t *testing.T) {
	slide := models.Slide{Layout: models.LayoutTitle, Content: &models.TitleContent{Title: "x"}}
	tree := text("div", "  padded  ", Attr{"data-field", "title"})
	got := ReadBack(tree, slide).(*models.TitleContent)
	assert.Equal(t, "padded", got.Title)
}

func TestReadBackDoesNotMutateInput(t *testing.T) {
	slide := models.Slide{
		Layout:  models.LayoutQuote,
		Content: &models.QuoteContent{Text: "original", Author: "A"},
	}
	tree := Render(slide, Editable)
	tree.FindField("quote-text").Text = "edited"
	got := ReadBack(tree, slide).(*models.QuoteContent)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, "original", slide.Content.(*models.QuoteContent).Text)
}

func TestRenderEscapesContent(t *testing.T) {
	slide := models.Slide{
		Layout:  models.LayoutTitle,
		Content: &models.TitleContent{Title: `<script>alert("x")</script>`},
	}
	html := Render(slide, ReadOnly).HTML()
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderEditableMarksFields(t *testing.T) {
	html := Render(slideFor(models.LayoutTitleSubtitle), Editable).HTML()
	assert.Contains(t, html, `contenteditable="true"`)
	assert.Contains(t, html, `data-field="title"`)
	assert.Contains(t, html, `data-field="subtitle"`)
	assert.NotContains(t, html, "data-animate-order")
}

func TestRenderReadOnlyAnimationAttrs(t *testing.T) {
	slide := slideFor(models.LayoutHero)
	html := Render(slide, ReadOnly).HTML()
	assert.NotContains(t, html, "contenteditable")
	assert.Contains(t, html, `data-animate-order="1"`)
	assert.Contains(t, html, `animation-delay: 0.00s`)
	assert.Contains(t, html, `data-animate-order="2"`)
	assert.Contains(t, html, `animation-delay: 0.12s`)
	assert.Contains(t, html, `class="slide-animation-wrap element-animation-fade"`)
}

func TestRenderReadOnlyNoWrapperWhenAnimationNone(t *testing.T) {
	slide := slideFor(models.LayoutTitle)
	slide.ElementAnimation = models.AnimationNone
	html := Render(slide, ReadOnly).HTML()
	assert.NotContains(t, html, "slide-animation-wrap")
}

func TestRenderBulletStagger(t *testing.T) {
	slide := models.Slide{
		Layout: models.LayoutBullet,
		Content: &models.BulletContent{
			Title: "T",
			Items: []models.BulletItem{
				{Text: "a", Icon: "circle"},
				{Text: "b", Icon: "star"},
			},
		},
		ElementAnimation: models.AnimationSlideUp,
	}
	html := Render(slide, ReadOnly).HTML()
	assert.Contains(t, html, `data-animate-order="2"`)
	assert.Contains(t, html, `data-animate-order="3"`)
	assert.Contains(t, html, `animation-delay: 0.24s`)
	assert.Contains(t, html, `icon="lucide:star"`)
	assert.Contains(t, html, "element-animation-slideUp")
}

func TestRenderImageTextModes(t *testing.T) {
	slide := models.Slide{
		Layout: models.LayoutImageText,
		Content: &models.ImageTextContent{
			Title:           "Our office",
			Body:            "Open space",
			ImageURL:        "https://example.com/office.png",
			ImageSuggestion: "Photo of the office",
		},
	}

	editable := Render(slide, Editable).HTML()
	assert.Contains(t, editable, `<input type="text" data-field="imageUrl"`)
	assert.Contains(t, editable, `value="https://example.com/office.png"`)
	assert.Contains(t, editable, `data-field="imageSuggestion"`)

	readOnly := Render(slide, ReadOnly).HTML()
	assert.Contains(t, readOnly, "background-image:url(https://example.com/office.png)")
	assert.NotContains(t, readOnly, "imageSuggestion")
	assert.NotContains(t, readOnly, "<input")

	slide.Content.(*models.ImageTextContent).ImageURL = ""
	placeholder := Render(slide, ReadOnly).HTML()
	assert.Contains(t, placeholder, "slide-image-text-placeholder")
	assert.Contains(t, placeholder, "Photo of the office")
}

func TestRenderDeterministic(t *testing.T) {
	slide := slideFor(models.LayoutStatsRow)
	first := Render(slide, ReadOnly).HTML()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Render(slide, ReadOnly).HTML())
	}
}

func TestFragmentSerializesChildrenOnly(t *testing.T) {
	html := Render(slideFor(models.LayoutTitleSubtitle), Editable).HTML()
	assert.True(t, strings.HasPrefix(html, `<div class="slide-title"`))
}
