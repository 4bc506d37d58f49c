package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

func TestFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Launch Plan", "Launch-Plan.pptx"},
		{"  Q3   Review  ", "Q3-Review.pptx"},
		{"Vendas: 2026 (draft)!", "Vendas-2026-draft.pptx"},
		{"", "presentation.pptx"},
		{"###", "presentation.pptx"},
		{"éàç", "presentation.pptx"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FileName(tc.title), "title %q", tc.title)
	}
}

func TestFileNameCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "presentation"
	}
	got := FileName(long)
	assert.LessOrEqual(t, len(got), 80+len(".pptx"))
}

func TestArgbFromHex(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#1A2B3C", "FF1A2B3C", true},
		{"#abc", "FFAABBCC", true},
		{"#abcd", "FFAABBCC", true},
		{"#11223344", "FF112233", true},
		{"#12", "", false},
		{"#zzzzzz", "", false},
	}
	for _, tc := range cases {
		got, ok := argbFromHex(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestDecodeDataURL(t *testing.T) {
	data, mime, ok := decodeDataURL("data:image/png;base64,AQID")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, "image/png", mime)

	_, _, ok = decodeDataURL("https://example.com/x.png")
	assert.False(t, ok)
	_, _, ok = decodeDataURL("data:image/png;base64,%%%")
	assert.False(t, ok)
}

func TestPptxEmptyDeck(t *testing.T) {
	_, err := Pptx(models.Deck{Title: "Empty"})
	assert.ErrorIs(t, err, ErrNoSlides)
}

func TestPptxRendersEveryLayout(t *testing.T) {
	deck := models.Deck{Title: "All layouts"}
	for _, info := range layouts.All {
		deck.Slides = append(deck.Slides, models.Slide{
			Layout:  info.ID,
			Content: layouts.DefaultContent(info.ID),
		})
	}
	deck.BrandColors = &models.BrandColors{Primary: "#1A2B3C"}

	data, err := Pptx(deck)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// A .pptx is a zip archive.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
