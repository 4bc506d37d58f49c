package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestSlideUnknownLayoutFallsBackToTitle(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"pie-chart","content":{"title":"Q3"}}`))
	require.True(t, ok)
	assert.Equal(t, models.LayoutTitle, slide.Layout)
	title := slide.Content.(*models.TitleContent)
	assert.Equal(t, "Q3", title.Title)
}

func TestSlideNonObjectDropped(t *testing.T) {
	_, ok := Slide("just a string")
	assert.False(t, ok)
	_, ok = Slide(nil)
	assert.False(t, ok)
}

func TestSlideMissingContentUsesDefaults(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"hero"}`))
	require.True(t, ok)
	hero := slide.Content.(*models.HeroContent)
	want := layouts.DefaultContent(models.LayoutHero).(*models.HeroContent)
	assert.Equal(t, want, hero)
}

func TestSlideCoercesScalarFields(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"big-number","content":{"number":42,"label":true}}`))
	require.True(t, ok)
	bn := slide.Content.(*models.BigNumberContent)
	assert.Equal(t, "42", bn.Number)
	assert.Equal(t, "true", bn.Label)
}

func TestSlideObjectValuedFieldFallsBack(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"title","content":{"title":{"nested":"x"}}}`))
	require.True(t, ok)
	title := slide.Content.(*models.TitleContent)
	assert.Equal(t, "Slide title", title.Title)
}

func TestSlideAnimationsDefaultToFade(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"title","content":{"title":"x"},"transition":"spin"}`))
	require.True(t, ok)
	assert.Equal(t, models.TransitionFade, slide.Transition)
	assert.Equal(t, models.AnimationFade, slide.ElementAnimation)

	slide, ok = Slide(decode(t, `{"layout":"title","content":{"title":"x"},"transition":"zoom","elementAnimation":"slideUp"}`))
	require.True(t, ok)
	assert.Equal(t, models.TransitionZoom, slide.Transition)
	assert.Equal(t, models.AnimationSlideUp, slide.ElementAnimation)
}

func TestBulletItemsNormalization(t *testing.T) {
	raw := `{"layout":"bullet","content":{"title":"T","items":[
		"bare string",
		{"text":"with icon","icon":"star"},
		{"text":"bad icon","icon":"dragon"},
		7,
		{"icon":"flag"}
	]}}`
	slide, ok := Slide(decode(t, raw))
	require.True(t, ok)
	bullet := slide.Content.(*models.BulletContent)
	require.Len(t, bullet.Items, 5)
	assert.Equal(t, models.BulletItem{Text: "bare string", Icon: "circle"}, bullet.Items[0])
	assert.Equal(t, models.BulletItem{Text: "with icon", Icon: "star"}, bullet.Items[1])
	assert.Equal(t, models.BulletItem{Text: "bad icon", Icon: "circle"}, bullet.Items[2])
	assert.Equal(t, models.BulletItem{Text: "7", Icon: "circle"}, bullet.Items[3])
	assert.Equal(t, models.BulletItem{Text: "", Icon: "flag"}, bullet.Items[4])
}

func TestBulletItemsNonArrayUsesDefaults(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"bullet","content":{"title":"T","items":"oops"}}`))
	require.True(t, ok)
	bullet := slide.Content.(*models.BulletContent)
	want := layouts.DefaultContent(models.LayoutBullet).(*models.BulletContent)
	assert.Equal(t, want.Items, bullet.Items)
}

func TestTimelineEventsNormalization(t *testing.T) {
	raw := `{"layout":"timeline","content":{"title":"T","events":[
		{"year":1969,"text":"Moon landing","icon":"star"},
		{"year":"1990","title":"Title key fallback"},
		{"icon":"flag"},
		"bare event"
	]}}`
	slide, ok := Slide(decode(t, raw))
	require.True(t, ok)
	tl := slide.Content.(*models.TimelineContent)
	require.Len(t, tl.Events, 3)
	assert.Equal(t, models.TimelineEvent{Year: "1969", Text: "Moon landing", Icon: "star"}, tl.Events[0])
	assert.Equal(t, models.TimelineEvent{Year: "1990", Text: "Title key fallback", Icon: "calendar"}, tl.Events[1])
	assert.Equal(t, models.TimelineEvent{Year: "", Text: "bare event", Icon: "calendar"}, tl.Events[2])
}

func TestTimelineAllEventsEmptyUsesDefaults(t *testing.T) {
	slide, ok := Slide(decode(t, `{"layout":"timeline","content":{"title":"T","events":[{"icon":"flag"},{}]}}`))
	require.True(t, ok)
	tl := slide.Content.(*models.TimelineContent)
	want := layouts.DefaultContent(models.LayoutTimeline).(*models.TimelineContent)
	assert.Equal(t, want.Events, tl.Events)
}

func TestSlideIdempotent(t *testing.T) {
	raw := `{"layout":"bullet","content":{"title":"T","items":["a",{"text":"b","icon":"zap"}]}}`
	first, ok := Slide(decode(t, raw))
	require.True(t, ok)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	second, ok := Slide(decode(t, string(encoded)))
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestDeckParsesProseWrappedJSON(t *testing.T) {
	text := "Here is your presentation:\n```json\n" +
		`{"deckTitle":"Launch Plan","slides":[{"layout":"title","content":{"title":"Go"}}]}` +
		"\n```\nLet me know if you want changes."
	deck, err := Deck(text)
	require.NoError(t, err)
	assert.Equal(t, "Launch Plan", deck.Title)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, models.LayoutTitle, deck.Slides[0].Layout)
}

func TestDeckBracesInsideStrings(t *testing.T) {
	text := `noise {"deckTitle":"T {not a brace}","slides":[{"layout":"title","content":{"title":"a } b"}}]} trailing`
	deck, err := Deck(text)
	require.NoError(t, err)
	assert.Equal(t, "T {not a brace}", deck.Title)
	assert.Equal(t, "a } b", deck.Slides[0].Content.(*models.TitleContent).Title)
}

func TestDeckMalformedResponse(t *testing.T) {
	_, err := Deck("no json here at all")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = Deck(`{"deckTitle":"unterminated`)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDeckNoValidSlides(t *testing.T) {
	_, err := Deck(`{"deckTitle":"Empty","slides":[]}`)
	assert.ErrorIs(t, err, ErrNoValidSlides)

	_, err = Deck(`{"deckTitle":"Empty","slides":["a","b",3]}`)
	assert.ErrorIs(t, err, ErrNoValidSlides)

	_, err = Deck(`{"deckTitle":"Empty"}`)
	assert.ErrorIs(t, err, ErrNoValidSlides)
}

func TestDeckMissingTitleFallsBack(t *testing.T) {
	deck, err := Deck(`{"slides":[{"layout":"section","content":{"title":"Part 1"}}]}`)
	require.NoError(t, err)
	assert.Equal(t, FallbackDeckTitle, deck.Title)
}

func TestDeckBrandColors(t *testing.T) {
	deck, err := Deck(`{"slides":[{"layout":"title","content":{"title":"x"}}],
		"brandColors":{"primary":"#1A2B3C","secondary":"not-a-color"}}`)
	require.NoError(t, err)
	require.NotNil(t, deck.BrandColors)
	assert.Equal(t, "#1A2B3C", deck.BrandColors.Primary)
	assert.Equal(t, "", deck.BrandColors.Secondary)

	deck, err = Deck(`{"slides":[{"layout":"title","content":{"title":"x"}}],
		"brandColors":{"primary":"blue","secondary":"#zzz"}}`)
	require.NoError(t, err)
	assert.Nil(t, deck.BrandColors)

	deck, err = Deck(`{"slides":[{"layout":"title","content":{"title":"x"}}],
		"brandColors":{"primary":"#abc"}}`)
	require.NoError(t, err)
	require.NotNil(t, deck.BrandColors)
	assert.Equal(t, "#abc", deck.BrandColors.Primary)
}

func TestDeckTemplateIDTrimmed(t *testing.T) {
	deck, err := Deck(`{"slides":[{"layout":"title","content":{"title":"x"}}],"templateId":"  corporate  "}`)
	require.NoError(t, err)
	assert.Equal(t, "corporate", deck.TemplateID)
}

func TestDeckDropsNonObjectSlides(t *testing.T) {
	deck, err := Deck(`{"deckTitle":"Mixed","slides":[
		{"layout":"title","content":{"title":"keep"}},
		null,
		"skip",
		{"layout":"quote","content":{"text":"q","author":"a"}}
	]}`)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 2)
	assert.Equal(t, models.LayoutTitle, deck.Slides[0].Layout)
	assert.Equal(t, models.LayoutQuote, deck.Slides[1].Layout)
}
