package export

import (
	"fmt"
	"strings"

	"seleniumguide/catalog"
)

// Slide geometry in inches, 16:9.
const (
	slideWidth   = 10.0
	slideHeight  = 5.625
	marginLeft   = 0.5
	contentWidth = 9.0

	titleTop    = 0.3
	titleHeight = 0.7
	contentTop  = 1.15

	paragraphStep   = 0.5
	paragraphHeight = 0.45
	bulletStep      = 0.32
	labelStep       = 0.3
	explanationStep = 0.4

	codeLineHeight = 0.2
	codePadding    = 0.15
	codeMaxHeight  = 3.0
	regionGap      = 0.15

	tableHeaderHeight = 0.35
	tableRowHeight    = 0.3
)

// Palette, ARGB.
const (
	colorPrimary  = "FF1E40AF"
	colorAccent   = "FF3B82F6"
	colorText     = "FF334155"
	colorMuted    = "FF64748B"
	colorWhite    = "FFFFFFFF"
	colorCodeBg   = "FF1E293B"
	colorCodeText = "FFE2E8F0"
	colorRowEven  = "FFF8FAFC"
	colorRowOdd   = "FFF1F5F9"
)

const (
	titleSlideSubtitle = "Selenium WebDriver Training"
	closingHeadline    = "End of Section"
	closingFooter      = "Completed"
)

// RegionKind names what a placed block represents.
type RegionKind string

const (
	RegionDecoration      RegionKind = "decoration"
	RegionLabel           RegionKind = "label"
	RegionTitle           RegionKind = "title"
	RegionSubtitle        RegionKind = "subtitle"
	RegionParagraph       RegionKind = "paragraph"
	RegionBullets         RegionKind = "bullets"
	RegionCodeExplanation RegionKind = "code-explanation"
	RegionCodeTitle       RegionKind = "code-title"
	RegionCodeBackground  RegionKind = "code-background"
	RegionCode            RegionKind = "code"
	RegionTableHeader     RegionKind = "table-header"
	RegionTableCell       RegionKind = "table-cell"
)

// TextStyle selects font size, weight and color at render time.
type TextStyle int

const (
	StyleNone TextStyle = iota
	StyleSectionLabel
	StyleDeckTitle
	StyleDeckSubtitle
	StyleSlideTitle
	StyleBody
	StyleCaption
	StyleCode
	StyleTableHeader
	StyleTableCell
)

// Region is one positioned block on a slide. Each entry of Lines becomes its
// own paragraph. A region without lines is a filled rectangle.
type Region struct {
	Kind     RegionKind
	X, Y     float64
	W, H     float64
	Lines    []string
	Style    TextStyle
	Fill     string
	Centered bool
}

// Text joins the region's lines.
func (r Region) Text() string { return strings.Join(r.Lines, "\n") }

// SlideLayout is the ordered list of regions drawn on one slide.
type SlideLayout struct {
	Title   string
	Regions []Region
}

// Kinds lists the region kinds in drawing order.
func (l SlideLayout) Kinds() []RegionKind {
	kinds := make([]RegionKind, 0, len(l.Regions))
	for _, r := range l.Regions {
		kinds = append(kinds, r.Kind)
	}
	return kinds
}

// Has reports whether any region of kind k was placed.
func (l SlideLayout) Has(k RegionKind) bool {
	for _, r := range l.Regions {
		if r.Kind == k {
			return true
		}
	}
	return false
}

// Cursor is the vertical position where the next region starts.
type Cursor struct {
	Y float64
}

// Advance returns the cursor moved down by dy.
func (c Cursor) Advance(dy float64) Cursor { return Cursor{Y: c.Y + dy} }

// LayoutSlide places a descriptor's regions in the fixed order
// title, paragraphs, bullets, code, table. Content taller than the slide is
// not clipped or paginated.
func LayoutSlide(s catalog.SlideContent) SlideLayout {
	layout := SlideLayout{Title: s.Title}
	layout.Regions = append(layout.Regions, placeTitle(s.Title))

	cur := Cursor{Y: contentTop}
	var placed []Region

	if s.HasContent() {
		placed, cur = placeParagraphs(cur, s.Content)
		layout.Regions = append(layout.Regions, placed...)
	}
	if s.HasBullets() {
		placed, cur = placeBullets(cur, s.BulletPoints)
		layout.Regions = append(layout.Regions, placed...)
	}
	if s.HasCode() {
		placed, cur = placeCode(cur, s.Code, s.CodeTitle, s.CodeExplanation)
		layout.Regions = append(layout.Regions, placed...)
	}
	if s.HasTable() {
		layout.Regions = append(layout.Regions, placeTable(cur, s.Table)...)
	}
	return layout
}

func placeTitle(title string) Region {
	return Region{
		Kind:  RegionTitle,
		X:     marginLeft,
		Y:     titleTop,
		W:     contentWidth,
		H:     titleHeight,
		Lines: []string{title},
		Style: StyleSlideTitle,
	}
}

func placeParagraphs(cur Cursor, paragraphs []string) ([]Region, Cursor) {
	regions := make([]Region, 0, len(paragraphs))
	for _, p := range paragraphs {
		regions = append(regions, Region{
			Kind:  RegionParagraph,
			X:     marginLeft,
			Y:     cur.Y,
			W:     contentWidth,
			H:     paragraphHeight,
			Lines: []string{p},
			Style: StyleBody,
		})
		cur = cur.Advance(paragraphStep)
	}
	return regions, cur
}

func placeBullets(cur Cursor, bullets []string) ([]Region, Cursor) {
	lines := make([]string, len(bullets))
	for i, b := range bullets {
		lines[i] = "• " + b
	}
	height := float64(len(bullets)) * bulletStep
	r := Region{
		Kind:  RegionBullets,
		X:     marginLeft,
		Y:     cur.Y,
		W:     contentWidth,
		H:     height,
		Lines: lines,
		Style: StyleBody,
	}
	return []Region{r}, cur.Advance(height)
}

// codeBlockHeight sizes the background to the line count, capped.
func codeBlockHeight(lineCount int) float64 {
	h := float64(lineCount)*codeLineHeight + 2*codePadding
	if h > codeMaxHeight {
		return codeMaxHeight
	}
	return h
}

func codeLines(code string) []string {
	return strings.Split(strings.TrimRight(code, "\n"), "\n")
}

func placeCode(cur Cursor, code, codeTitle, explanation string) ([]Region, Cursor) {
	var regions []Region

	if explanation != "" {
		regions = append(regions, Region{
			Kind:  RegionCodeExplanation,
			X:     marginLeft,
			Y:     cur.Y,
			W:     contentWidth,
			H:     labelStep + explanationStep,
			Lines: []string{"Explanation:", explanation},
			Style: StyleCaption,
		})
		cur = cur.Advance(labelStep + explanationStep)
	}
	if codeTitle != "" {
		regions = append(regions, Region{
			Kind:  RegionCodeTitle,
			X:     marginLeft,
			Y:     cur.Y,
			W:     contentWidth,
			H:     labelStep,
			Lines: []string{codeTitle},
			Style: StyleCaption,
		})
		cur = cur.Advance(labelStep)
	}

	lines := codeLines(code)
	height := codeBlockHeight(len(lines))
	regions = append(regions,
		Region{
			Kind: RegionCodeBackground,
			X:    marginLeft,
			Y:    cur.Y,
			W:    contentWidth,
			H:    height,
			Fill: colorCodeBg,
		},
		Region{
			Kind:  RegionCode,
			X:     marginLeft + codePadding,
			Y:     cur.Y + codePadding,
			W:     contentWidth - 2*codePadding,
			H:     height - 2*codePadding,
			Lines: lines,
			Style: StyleCode,
		},
	)
	return regions, cur.Advance(height + regionGap)
}

// placeTable lays out the header and body cells as a grid. Short rows are
// padded with empty cells and extra cells are dropped so the grid stays
// aligned with the header. Without headers the rows start at the cursor.
func placeTable(cur Cursor, t *catalog.Table) []Region {
	cols := t.Columns()
	colWidth := contentWidth / float64(cols)
	regions := make([]Region, 0, cols*(len(t.Rows)+1))

	y := cur.Y
	for i, h := range t.Headers {
		regions = append(regions, Region{
			Kind:     RegionTableHeader,
			X:        marginLeft + float64(i)*colWidth,
			Y:        cur.Y,
			W:        colWidth,
			H:        tableHeaderHeight,
			Lines:    []string{h},
			Style:    StyleTableHeader,
			Fill:     colorAccent,
			Centered: true,
		})
	}
	if len(t.Headers) > 0 {
		y += tableHeaderHeight
	}

	for r, row := range t.Rows {
		fill := colorRowEven
		if r%2 == 1 {
			fill = colorRowOdd
		}
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			regions = append(regions, Region{
				Kind:  RegionTableCell,
				X:     marginLeft + float64(i)*colWidth,
				Y:     y,
				W:     colWidth,
				H:     tableRowHeight,
				Lines: []string{cell},
				Style: StyleTableCell,
				Fill:  fill,
			})
		}
		y += tableRowHeight
	}
	return regions
}

// TitleSlideLayout is the opening slide of a section deck.
func TitleSlideLayout(data catalog.SectionPPTData) SlideLayout {
	return SlideLayout{
		Title: data.SectionTitle,
		Regions: []Region{
			{Kind: RegionDecoration, X: 0, Y: 0, W: slideWidth, H: 0.15, Fill: colorAccent},
			{
				Kind: RegionLabel, X: marginLeft, Y: 1.3, W: contentWidth, H: 0.5,
				Lines: []string{SectionLabel(data.SectionNumber)}, Style: StyleSectionLabel, Centered: true,
			},
			{
				Kind: RegionTitle, X: marginLeft, Y: 1.9, W: contentWidth, H: 1.0,
				Lines: []string{data.SectionTitle}, Style: StyleDeckTitle, Centered: true,
			},
			{
				Kind: RegionSubtitle, X: marginLeft, Y: 3.1, W: contentWidth, H: 0.5,
				Lines: []string{titleSlideSubtitle}, Style: StyleDeckSubtitle, Centered: true,
			},
			{Kind: RegionDecoration, X: 0, Y: slideHeight - 0.125, W: slideWidth, H: 0.125, Fill: colorAccent},
		},
	}
}

// ClosingSlideLayout is the fixed last slide of a section deck.
func ClosingSlideLayout(data catalog.SectionPPTData) SlideLayout {
	return SlideLayout{
		Title: closingHeadline,
		Regions: []Region{
			{Kind: RegionDecoration, X: 0, Y: 0, W: slideWidth, H: 0.15, Fill: colorAccent},
			{
				Kind: RegionTitle, X: marginLeft, Y: 1.6, W: contentWidth, H: 0.9,
				Lines: []string{closingHeadline}, Style: StyleDeckTitle, Centered: true,
			},
			{
				Kind: RegionSubtitle, X: marginLeft, Y: 2.6, W: contentWidth, H: 0.5,
				Lines: []string{data.SectionTitle}, Style: StyleDeckSubtitle, Centered: true,
			},
			{
				Kind: RegionLabel, X: marginLeft, Y: 3.3, W: contentWidth, H: 0.5,
				Lines: []string{closingFooter}, Style: StyleSectionLabel, Centered: true,
			},
			{Kind: RegionDecoration, X: 0, Y: slideHeight - 0.125, W: slideWidth, H: 0.125, Fill: colorAccent},
		},
	}
}

// DeckLayout lays out the full deck: title slide, one slide per descriptor in
// input order, closing slide.
func DeckLayout(data catalog.SectionPPTData) []SlideLayout {
	deck := make([]SlideLayout, 0, len(data.Slides)+2)
	deck = append(deck, TitleSlideLayout(data))
	for _, s := range data.Slides {
		deck = append(deck, LayoutSlide(s))
	}
	return append(deck, ClosingSlideLayout(data))
}

// SectionLabel renders the zero-padded section marker, e.g. "SECTION 03".
func SectionLabel(number int) string {
	return fmt.Sprintf("SECTION %02d", number)
}
