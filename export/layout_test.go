package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seleniumguide/catalog"
)

func fullSlide() catalog.SlideContent {
	return catalog.SlideContent{
		Title:           "Everything",
		Content:         []string{"first paragraph", "second paragraph"},
		BulletPoints:    []string{"one", "two", "three"},
		Code:            "driver.get(url);\ndriver.quit();\n",
		CodeTitle:       "Example.java",
		CodeExplanation: "Opens and closes the browser",
		Table: &catalog.Table{
			Headers: []string{"Locator", "Speed"},
			Rows:    [][]string{{"id", "fast"}, {"xpath", "slow"}},
		},
	}
}

func TestLayoutSlide_TitleOnly(t *testing.T) {
	layout := LayoutSlide(catalog.SlideContent{Title: "Just a title"})

	require.Len(t, layout.Regions, 1)
	assert.Equal(t, RegionTitle, layout.Regions[0].Kind)
	assert.Equal(t, "Just a title", layout.Regions[0].Text())
	for _, k := range []RegionKind{RegionParagraph, RegionBullets, RegionCode, RegionCodeBackground, RegionTableHeader, RegionTableCell} {
		assert.False(t, layout.Has(k), "unexpected %s region", k)
	}
}

func TestLayoutSlide_AllFieldsInFixedOrder(t *testing.T) {
	layout := LayoutSlide(fullSlide())

	want := []RegionKind{
		RegionTitle,
		RegionParagraph, RegionParagraph,
		RegionBullets,
		RegionCodeExplanation, RegionCodeTitle, RegionCodeBackground, RegionCode,
		RegionTableHeader, RegionTableHeader,
		RegionTableCell, RegionTableCell, RegionTableCell, RegionTableCell,
	}
	assert.Equal(t, want, layout.Kinds())
}

func TestLayoutSlide_CursorAdvances(t *testing.T) {
	layout := LayoutSlide(fullSlide())
	r := layout.Regions

	assert.InDelta(t, contentTop, r[1].Y, 1e-9)
	assert.InDelta(t, contentTop+paragraphStep, r[2].Y, 1e-9)

	bulletsY := contentTop + 2*paragraphStep
	assert.InDelta(t, bulletsY, r[3].Y, 1e-9)
	assert.InDelta(t, 3*bulletStep, r[3].H, 1e-9)
	assert.Equal(t, []string{"• one", "• two", "• three"}, r[3].Lines)

	explanationY := bulletsY + 3*bulletStep
	assert.InDelta(t, explanationY, r[4].Y, 1e-9)
	assert.Equal(t, []string{"Explanation:", "Opens and closes the browser"}, r[4].Lines)

	codeTitleY := explanationY + labelStep + explanationStep
	assert.InDelta(t, codeTitleY, r[5].Y, 1e-9)

	codeY := codeTitleY + labelStep
	assert.InDelta(t, codeY, r[6].Y, 1e-9)
	assert.Equal(t, colorCodeBg, r[6].Fill)
	assert.InDelta(t, codeBlockHeight(2), r[6].H, 1e-9)
	assert.Equal(t, []string{"driver.get(url);", "driver.quit();"}, r[7].Lines)

	tableY := codeY + codeBlockHeight(2) + regionGap
	assert.InDelta(t, tableY, r[8].Y, 1e-9)
	assert.InDelta(t, tableY+tableHeaderHeight, r[10].Y, 1e-9)
	assert.InDelta(t, tableY+tableHeaderHeight+tableRowHeight, r[12].Y, 1e-9)
}

func TestCodeBlockHeight_Capped(t *testing.T) {
	assert.InDelta(t, 3*codeLineHeight+2*codePadding, codeBlockHeight(3), 1e-9)
	assert.Equal(t, codeMaxHeight, codeBlockHeight(100))
}

func TestCodeExplanationAndTitleAreOptional(t *testing.T) {
	layout := LayoutSlide(catalog.SlideContent{Title: "Code", Code: "x := 1"})

	assert.Equal(t, []RegionKind{RegionTitle, RegionCodeBackground, RegionCode}, layout.Kinds())
	assert.InDelta(t, contentTop, layout.Regions[1].Y, 1e-9)
}

func TestPlaceTable_PadsShortRowsAndDropsExtraCells(t *testing.T) {
	layout := LayoutSlide(catalog.SlideContent{
		Title: "Ragged",
		Table: &catalog.Table{
			Headers: []string{"A", "B", "C"},
			Rows:    [][]string{{"1"}, {"1", "2", "3", "4"}},
		},
	})

	var cells []string
	for _, r := range layout.Regions {
		if r.Kind == RegionTableCell {
			cells = append(cells, r.Text())
		}
	}
	assert.Equal(t, []string{"1", "", "", "1", "2", "3"}, cells)
}

func TestPlaceTable_AlternatesRowFill(t *testing.T) {
	layout := LayoutSlide(fullSlide())

	var fills []string
	for _, r := range layout.Regions {
		if r.Kind == RegionTableCell {
			fills = append(fills, r.Fill)
		}
	}
	assert.Equal(t, []string{colorRowEven, colorRowEven, colorRowOdd, colorRowOdd}, fills)
}

func TestPlaceTable_WithoutHeadersUsesWidestRow(t *testing.T) {
	layout := LayoutSlide(catalog.SlideContent{
		Title: "No headers",
		Table: &catalog.Table{Rows: [][]string{{"a", "b"}, {"c"}}},
	})
	assert.False(t, layout.Has(RegionTableHeader))

	var cells []Region
	for _, r := range layout.Regions {
		if r.Kind == RegionTableCell {
			cells = append(cells, r)
		}
	}
	require.Len(t, cells, 4)
	assert.Equal(t, []string{"a", "b", "c", ""}, []string{cells[0].Text(), cells[1].Text(), cells[2].Text(), cells[3].Text()})
	assert.InDelta(t, contentTop, cells[0].Y, 1e-9, "rows start where the header would")
	assert.InDelta(t, contentWidth/2, cells[0].W, 1e-9)
}

func TestDeckLayout_TitleAndClosingSlides(t *testing.T) {
	data := catalog.SectionPPTData{
		SectionTitle:  "Waits",
		SectionNumber: 4,
		Slides:        []catalog.SlideContent{{Title: "Implicit"}, {Title: "Explicit"}},
	}

	deck := DeckLayout(data)
	require.Len(t, deck, 4)

	first := deck[0]
	assert.Equal(t, "Waits", first.Title)
	assert.True(t, first.Has(RegionLabel))
	var texts []string
	for _, r := range first.Regions {
		if len(r.Lines) > 0 {
			texts = append(texts, r.Text())
		}
	}
	assert.Equal(t, []string{"SECTION 04", "Waits", titleSlideSubtitle}, texts)

	assert.Equal(t, "Implicit", deck[1].Title)
	assert.Equal(t, "Explicit", deck[2].Title)

	last := deck[3]
	texts = texts[:0]
	for _, r := range last.Regions {
		if len(r.Lines) > 0 {
			texts = append(texts, r.Text())
		}
	}
	assert.Equal(t, []string{"End of Section", "Waits", "Completed"}, texts)
}

func TestSectionLabel(t *testing.T) {
	assert.Equal(t, "SECTION 01", SectionLabel(1))
	assert.Equal(t, "SECTION 12", SectionLabel(12))
}
