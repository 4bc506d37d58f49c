package models

// Content is the layout-specific slide body. Exactly one concrete type
// exists per layout, so mismatched field access is a compile error.
type Content interface {
	ContentLayout() Layout
	Clone() Content
}

// BulletItem is one entry of a bulleted list.
type BulletItem struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// TimelineEvent is one entry of a chronological layout.
type TimelineEvent struct {
	Year string `json:"year"`
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type TitleContent struct {
	Title string `json:"title"`
}

type TitleSubtitleContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type BulletContent struct {
	Title string       `json:"title"`
	Items []BulletItem `json:"items"`
}

type TimelineContent struct {
	Title  string          `json:"title"`
	Events []TimelineEvent `json:"events"`
}

type TwoColumnContent struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type BigNumberContent struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

type StatsRowContent struct {
	Stat1  string `json:"stat1"`
	Label1 string `json:"label1"`
	Stat2  string `json:"stat2"`
	Label2 string `json:"label2"`
	Stat3  string `json:"stat3"`
	Label3 string `json:"label3"`
}

type QuoteContent struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type SectionContent struct {
	Title string `json:"title"`
}

type ImageTextContent struct {
	Title           string `json:"title"`
	Body            string `json:"body"`
	ImageURL        string `json:"imageUrl"`
	ImageSuggestion string `json:"imageSuggestion"`
}

func (c *HeroContent) ContentLayout() Layout          { return LayoutHero }
func (c *TitleContent) ContentLayout() Layout         { return LayoutTitle }
func (c *TitleSubtitleContent) ContentLayout() Layout { return LayoutTitleSubtitle }
func (c *BulletContent) ContentLayout() Layout        { return LayoutBullet }
func (c *TimelineContent) ContentLayout() Layout      { return LayoutTimeline }
func (c *TwoColumnContent) ContentLayout() Layout     { return LayoutTwoColumn }
func (c *BigNumberContent) ContentLayout() Layout     { return LayoutBigNumber }
func (c *StatsRowContent) ContentLayout() Layout      { return LayoutStatsRow }
func (c *QuoteContent) ContentLayout() Layout         { return LayoutQuote }
func (c *SectionContent) ContentLayout() Layout       { return LayoutSection }
func (c *ImageTextContent) ContentLayout() Layout     { return LayoutImageText }

func (c *HeroContent) Clone() Content {
	out := *c
	return &out
}

func (c *TitleContent) Clone() Content {
	out := *c
	return &out
}

func (c *TitleSubtitleContent) Clone() Content {
	out := *c
	return &out
}

func (c *BulletContent) Clone() Content {
	out := *c
	out.Items = make([]BulletItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}

func (c *TimelineContent) Clone() Content {
	out := *c
	out.Events = make([]TimelineEvent, len(c.Events))
	copy(out.Events, c.Events)
	return &out
}

func (c *TwoColumnContent) Clone() Content {
	out := *c
	return &out
}

func (c *BigNumberContent) Clone() Content {
	out := *c
	return &out
}

func (c *StatsRowContent) Clone() Content {
	out := *c
	return &out
}

func (c *QuoteContent) Clone() Content {
	out := *c
	return &out
}

func (c *SectionContent) Clone() Content {
	out := *c
	return &out
}

func (c *ImageTextContent) Clone() Content {
	out := *c
	return &out
}

// NewContent returns a zero-value content record for the layout, or nil if
// the layout is unknown.
func NewContent(layout Layout) Content {
	switch layout {
	case LayoutHero:
		return &HeroContent{}
	case LayoutTitle:
		return &TitleContent{}
	case LayoutTitleSubtitle:
		return &TitleSubtitleContent{}
	case LayoutBullet:
		return &BulletContent{}
	case LayoutTimeline:
		return &TimelineContent{}
	case LayoutTwoColumn:
		return &TwoColumnContent{}
	case LayoutBigNumber:
		return &BigNumberContent{}
	case LayoutStatsRow:
		return &StatsRowContent{}
	case LayoutQuote:
		return &QuoteContent{}
	case LayoutSection:
		return &SectionContent{}
	case LayoutImageText:
		return &ImageTextContent{}
	}
	return nil
}
