// Package export renders a deck into a PowerPoint file.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidedeck/internal/models"
)

// 16:9 geometry in inches, converted to EMU for GoPPT.
const (
	emuPerInch = 914400

	slideWidthIn   = 10.0
	marginIn       = 0.5
	contentWidthIn = slideWidthIn - 2*marginIn
)

const (
	bodyColor  = "FF363636"
	mutedColor = "FF64748B"
)

// ErrNoSlides rejects exporting an empty deck.
var ErrNoSlides = errors.New("deck has no slides")

func emu(inches float64) int64 {
	return int64(inches * emuPerInch)
}

// Pptx renders the deck, one PowerPoint slide per deck slide. The brand
// primary color, when present, is applied to titles.
func Pptx(deck models.Deck) ([]byte, error) {
	if len(deck.Slides) == 0 {
		return nil, ErrNoSlides
	}

	p := ppt.New()
	title := deck.Title
	if title == "" {
		title = "Presentation"
	}
	p.GetDocumentProperties().Title = title
	p.GetDocumentProperties().Creator = "slidedeck"

	titleColor := bodyColor
	if deck.BrandColors != nil && deck.BrandColors.Primary != "" {
		if argb, ok := argbFromHex(deck.BrandColors.Primary); ok {
			titleColor = argb
		}
	}

	for i, s := range deck.Slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		addSlideContent(slide, s, titleColor)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create pptx writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pptx: %w", err)
	}
	return buf.Bytes(), nil
}

// textOpts places one text shape. Zero x means the default left margin.
type textOpts struct {
	x, y, w, h float64
	size       int
	color      string
	bold       bool
	center     bool
}

func addText(slide *ppt.Slide, content string, o textOpts) {
	addLines(slide, []string{content}, o)
}

func addLines(slide *ppt.Slide, lines []string, o textOpts) {
	if o.x == 0 {
		o.x = marginIn
	}
	if o.w == 0 {
		o.w = contentWidthIn
	}
	if o.color == "" {
		o.color = bodyColor
	}
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(emu(o.x)).SetOffsetY(emu(o.y))
	shape.SetWidth(emu(o.w)).SetHeight(emu(o.h))
	for i, line := range lines {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(line)
		font := tr.GetFont().SetSize(o.size).SetColor(ppt.NewColor(o.color))
		if o.bold {
			font.SetBold(true)
		}
		if o.center {
			shape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		}
	}
}

func addSlideContent(slide *ppt.Slide, s models.Slide, titleColor string) {
	switch c := s.Content.(type) {
	case *models.HeroContent:
		addText(slide, c.Title, textOpts{y: 1.5, h: 1, size: 28, bold: true, center: true, color: titleColor})
		if c.Subtitle != "" {
			addText(slide, c.Subtitle, textOpts{y: 2.6, h: 0.8, size: 16, center: true})
		}
	case *models.TitleSubtitleContent:
		addText(slide, c.Title, textOpts{y: 1.5, h: 1, size: 28, bold: true, center: true, color: titleColor})
		if c.Subtitle != "" {
			addText(slide, c.Subtitle, textOpts{y: 2.6, h: 0.8, size: 16, center: true})
		}
	case *models.TitleContent:
		addText(slide, c.Title, textOpts{y: 2, h: 1, size: 24, bold: true, center: true, color: titleColor})
	case *models.SectionContent:
		addText(slide, c.Title, textOpts{y: 2, h: 1, size: 24, bold: true, center: true, color: titleColor})
	case *models.BulletContent:
		addText(slide, c.Title, textOpts{y: 0.4, h: 0.5, size: 18, bold: true, color: titleColor})
		var lines []string
		for _, item := range c.Items {
			if item.Text != "" {
				lines = append(lines, "• "+item.Text)
			}
		}
		if len(lines) > 0 {
			addLines(slide, lines, textOpts{y: 1.1, h: 3.5, size: 12})
		}
	case *models.TimelineContent:
		addText(slide, c.Title, textOpts{y: 0.4, h: 0.5, size: 18, bold: true, color: titleColor})
		var lines []string
		for _, ev := range c.Events {
			line := ev.Text
			if ev.Year != "" {
				line = ev.Year + " – " + ev.Text
			}
			if line != "" {
				lines = append(lines, "• "+line)
			}
		}
		if len(lines) > 0 {
			addLines(slide, lines, textOpts{y: 1, h: 3.8, size: 11})
		}
	case *models.TwoColumnContent:
		half := contentWidthIn / 2
		addText(slide, c.Left, textOpts{y: 1, h: 2.5, w: half - 0.2, size: 14})
		addText(slide, c.Right, textOpts{x: marginIn + half + 0.2, y: 1, h: 2.5, w: half - 0.2, size: 14})
	case *models.BigNumberContent:
		addText(slide, c.Number, textOpts{y: 1.2, h: 1.2, size: 44, bold: true, center: true, color: titleColor})
		addText(slide, c.Label, textOpts{y: 2.5, h: 0.8, size: 16, center: true})
	case *models.StatsRowContent:
		third := contentWidthIn / 3
		stats := [][2]string{{c.Stat1, c.Label1}, {c.Stat2, c.Label2}, {c.Stat3, c.Label3}}
		for i, st := range stats {
			var lines []string
			if st[0] != "" {
				lines = append(lines, st[0])
			}
			if st[1] != "" {
				lines = append(lines, st[1])
			}
			if len(lines) == 0 {
				continue
			}
			addLines(slide, lines, textOpts{
				x: marginIn + float64(i)*third, y: 1.8, h: 1.2, w: third - 0.2,
				size: 12, center: true,
			})
		}
	case *models.QuoteContent:
		addText(slide, c.Text, textOpts{y: 1.5, h: 1.5, size: 18, center: true, color: titleColor})
		addText(slide, c.Author, textOpts{y: 3.2, h: 0.5, size: 12, center: true, color: mutedColor})
	case *models.ImageTextContent:
		addText(slide, c.Title, textOpts{y: 0.4, h: 0.5, size: 18, bold: true, color: titleColor})
		if img, mime, ok := decodeDataURL(c.ImageURL); ok {
			addText(slide, c.Body, textOpts{y: 1, h: 3, w: 4.3, size: 12})
			shape := slide.CreateDrawingShape()
			shape.SetImageData(img, mime)
			shape.SetOffsetX(emu(5.2)).SetOffsetY(emu(1.0))
			shape.SetWidth(emu(4.3)).SetHeight(emu(3.0))
		} else {
			addText(slide, c.Body, textOpts{y: 1, h: 3, size: 12})
		}
	default:
		addText(slide, "Slide", textOpts{y: 2, h: 1, size: 20, center: true})
	}
}

// decodeDataURL unpacks a data:image/...;base64 URL. Remote URLs are not
// fetched at export time.
func decodeDataURL(url string) ([]byte, string, bool) {
	if !strings.HasPrefix(url, "data:image/") {
		return nil, "", false
	}
	head, payload, found := strings.Cut(url, ",")
	if !found || !strings.Contains(head, ";base64") {
		return nil, "", false
	}
	mime := strings.TrimSuffix(strings.TrimPrefix(head, "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return data, mime, true
}

var (
	unsafeRunes = regexp.MustCompile(`[^\w\s-]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// FileName derives a safe download name from the deck title.
func FileName(deckTitle string) string {
	base := unsafeRunes.ReplaceAllString(deckTitle, "")
	base = spaceRuns.ReplaceAllString(base, "-")
	if len(base) > 80 {
		base = base[:80]
	}
	base = strings.Trim(base, "-")
	if base == "" {
		base = "presentation"
	}
	return base + ".pptx"
}

// argbFromHex converts a css-style #hex color to GoPPT's ARGB form. Short
// forms expand per CSS; an alpha component, when present, is dropped in favor
// of full opacity.
func argbFromHex(hex string) (string, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(s) {
	case 3, 4:
		var sb strings.Builder
		for _, r := range s[:3] {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		s = sb.String()
	case 6:
	case 8:
		s = s[:6]
	default:
		return "", false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	return "FF" + strings.ToUpper(s), true
}
