package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
)

func titled(titles ...string) models.Deck {
	slides := make([]models.Slide, len(titles))
	for i, title := range titles {
		slides[i] = models.Slide{
			Layout:  models.LayoutTitle,
			Content: &models.TitleContent{Title: title},
		}
	}
	return models.Deck{Title: "Deck", Slides: slides}
}

func slideTitle(t *testing.T, s *Session, index int) string {
	t.Helper()
	slide, err := s.Slide(index)
	require.NoError(t, err)
	return slide.Content.(*models.TitleContent).Title
}

func TestNewSessionStartsWithDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, 2, s.SlideCount())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestAddSlideInsertsAfterSelection(t *testing.T) {
	s := FromDeck(titled("a", "b", "c"))
	s.Select(1)
	at := s.AddSlide()
	assert.Equal(t, 2, at)
	assert.Equal(t, 4, s.SlideCount())
	assert.Equal(t, 2, s.CurrentIndex())
	assert.Equal(t, "b", slideTitle(t, s, 1))
	assert.Equal(t, "c", slideTitle(t, s, 3))
}

func TestDuplicateSlideDeepCopies(t *testing.T) {
	s := FromDeck(titled("a", "b"))
	at, err := s.DuplicateSlide(0)
	require.NoError(t, err)
	assert.Equal(t, 1, at)
	assert.Equal(t, "a", slideTitle(t, s, 1))

	s.Select(1)
	s.SetContent(map[string]any{"title": "edited copy"})
	assert.Equal(t, "a", slideTitle(t, s, 0))
	assert.Equal(t, "edited copy", slideTitle(t, s, 1))
}

func TestDeleteSlideFloorOfOne(t *testing.T) {
	s := FromDeck(titled("only"))
	assert.ErrorIs(t, s.DeleteSlide(0), ErrLastSlide)

	s = FromDeck(titled("a", "b", "c"))
	s.Select(2)
	require.NoError(t, s.DeleteSlide(2))
	assert.Equal(t, 1, s.CurrentIndex())
	require.NoError(t, s.DeleteSlide(0))
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, "b", slideTitle(t, s, 0))
}

func TestDeleteSlideIndexValidation(t *testing.T) {
	s := FromDeck(titled("a", "b"))
	assert.ErrorIs(t, s.DeleteSlide(5), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.DeleteSlide(-1), ErrIndexOutOfRange)
}

func TestSetLayoutResetsContent(t *testing.T) {
	s := FromDeck(titled("keep me"))
	require.NoError(t, s.SetLayout(models.LayoutBullet))
	slide, err := s.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, models.LayoutBullet, slide.Layout)
	assert.Equal(t, layouts.DefaultContent(models.LayoutBullet), slide.Content)

	// The replaced content is one undo step away.
	require.True(t, s.Undo())
	assert.Equal(t, "keep me", slideTitle(t, s, 0))
}

func TestSetLayoutUnknown(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.SetLayout("pie-chart"), ErrUnknownLayout)
}

func TestMoveSlide(t *testing.T) {
	s := FromDeck(titled("a", "b", "c"))
	require.NoError(t, s.MoveSlide(0, 2))
	assert.Equal(t, "b", slideTitle(t, s, 0))
	assert.Equal(t, "c", slideTitle(t, s, 1))
	assert.Equal(t, "a", slideTitle(t, s, 2))
	assert.Equal(t, 2, s.CurrentIndex())
}

func TestReorder(t *testing.T) {
	s := FromDeck(titled("a", "b", "c"))
	s.Select(2)
	require.NoError(t, s.Reorder([]int{2, 0, 1}))
	assert.Equal(t, "c", slideTitle(t, s, 0))
	assert.Equal(t, "a", slideTitle(t, s, 1))
	assert.Equal(t, 0, s.CurrentIndex())

	assert.ErrorIs(t, s.Reorder([]int{0, 0, 1}), ErrInvalidReorder)
	assert.ErrorIs(t, s.Reorder([]int{0, 1}), ErrInvalidReorder)
}

func TestSetTransitionAndAnimation(t *testing.T) {
	s := New()
	require.NoError(t, s.SetTransition(models.TransitionZoom))
	require.NoError(t, s.SetElementAnimation(models.AnimationSlideUp))
	slide, err := s.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, models.TransitionZoom, slide.Transition)
	assert.Equal(t, models.AnimationSlideUp, slide.ElementAnimation)

	assert.ErrorIs(t, s.SetTransition("spin"), ErrUnknownValue)
	assert.ErrorIs(t, s.SetElementAnimation("wobble"), ErrUnknownValue)
}

func TestSetContentNormalizes(t *testing.T) {
	s := FromDeck(titled("a"))
	require.NoError(t, s.SetLayout(models.LayoutBullet))
	s.SetContent(map[string]any{
		"title": "List",
		"items": []any{"plain", map[string]any{"text": "iconed", "icon": "dragon"}},
	})
	slide, err := s.Slide(0)
	require.NoError(t, err)
	bullet := slide.Content.(*models.BulletContent)
	require.Len(t, bullet.Items, 2)
	assert.Equal(t, models.BulletItem{Text: "plain", Icon: "circle"}, bullet.Items[0])
	assert.Equal(t, models.BulletItem{Text: "iconed", Icon: "circle"}, bullet.Items[1])
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := FromDeck(titled("a"))
	s.SetContent(map[string]any{"title": "b"})
	s.SetContent(map[string]any{"title": "c"})

	require.True(t, s.Undo())
	assert.Equal(t, "b", slideTitle(t, s, 0))
	require.True(t, s.Undo())
	assert.Equal(t, "a", slideTitle(t, s, 0))
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	assert.Equal(t, "b", slideTitle(t, s, 0))
	require.True(t, s.Redo())
	assert.Equal(t, "c", slideTitle(t, s, 0))
	assert.False(t, s.Redo())
}

func TestMutationTruncatesRedo(t *testing.T) {
	s := FromDeck(titled("a"))
	s.SetContent(map[string]any{"title": "b"})
	require.True(t, s.Undo())
	s.SetContent(map[string]any{"title": "fork"})
	assert.False(t, s.CanRedo())
	assert.Equal(t, "fork", slideTitle(t, s, 0))
	require.True(t, s.Undo())
	assert.Equal(t, "a", slideTitle(t, s, 0))
}

func TestHistoryBounded(t *testing.T) {
	s := FromDeck(titled("start"))
	for i := 0; i < MaxHistory+5; i++ {
		s.SetContent(map[string]any{"title": fmt.Sprintf("v%d", i)})
	}
	undos := 0
	for s.Undo() {
		undos++
	}
	assert.Equal(t, MaxHistory, undos)
	// The oldest reachable state is no longer the initial one.
	assert.Equal(t, "v4", slideTitle(t, s, 0))
}

func TestSelectDoesNotTouchHistory(t *testing.T) {
	s := FromDeck(titled("a", "b"))
	s.Select(1)
	assert.False(t, s.CanUndo())
	assert.Equal(t, 1, s.Select(99))
	assert.Equal(t, 0, s.Select(-3))
}

func TestApplyGeneratedUndoable(t *testing.T) {
	s := FromDeck(titled("old"))
	s.ApplyGenerated(titled("new 1", "new 2"))
	assert.Equal(t, 2, s.SlideCount())
	assert.Equal(t, 0, s.CurrentIndex())
	require.True(t, s.Undo())
	assert.Equal(t, 1, s.SlideCount())
	assert.Equal(t, "old", slideTitle(t, s, 0))
}

func TestUndoRestoresSelection(t *testing.T) {
	s := FromDeck(titled("a", "b", "c"))
	s.Select(2)
	require.NoError(t, s.DeleteSlide(2))
	assert.Equal(t, 1, s.CurrentIndex())
	require.True(t, s.Undo())
	assert.Equal(t, 3, s.SlideCount())
	assert.Equal(t, 2, s.CurrentIndex())
}

func TestSnapshotsIsolatedFromLaterEdits(t *testing.T) {
	s := FromDeck(titled("a"))
	require.NoError(t, s.SetLayout(models.LayoutBullet))
	s.SetContent(map[string]any{"title": "L", "items": []any{"one"}})
	s.SetContent(map[string]any{"title": "L", "items": []any{"one", "two"}})
	require.True(t, s.Undo())
	slide, err := s.Slide(0)
	require.NoError(t, err)
	require.Len(t, slide.Content.(*models.BulletContent).Items, 1)
	require.True(t, s.Redo())
	slide, err = s.Slide(0)
	require.NoError(t, err)
	assert.Len(t, slide.Content.(*models.BulletContent).Items, 2)
}

func TestDeckTitleNotUndoable(t *testing.T) {
	s := FromDeck(titled("a"))
	s.SetDeckTitle("Renamed")
	assert.False(t, s.CanUndo())
	assert.Equal(t, "Renamed", s.Deck().Title)
}
