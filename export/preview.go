package export

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"seleniumguide/catalog"
)

// SlidePreview is the text found on one slide. Title comes from the shape
// named after RegionTitle, even when it is blank. Decks without such a shape
// use their first non-empty paragraph.
type SlidePreview struct {
	Title string   `json:"title"`
	Texts []string `json:"texts,omitempty"`
}

// DeckPreview summarizes a generated deck.
type DeckPreview struct {
	FileName   string         `json:"fileName"`
	SlideCount int            `json:"slideCount"`
	Slides     []SlidePreview `json:"slides"`
}

// PreviewSection builds the deck in memory and reads its text back through
// the shape API, the same walk used for PPTX files on disk.
func (s *GoPPTService) PreviewSection(data catalog.SectionPPTData) DeckPreview {
	p := s.BuildSectionPresentation(data)
	preview := previewPresentation(p)
	preview.FileName = SectionFileName(data.SectionNumber, data.SectionTitle, FormatPPTX)
	return preview
}

// PreviewFile reads a PPTX file from disk.
func PreviewFile(path string) (DeckPreview, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return DeckPreview{}, fmt.Errorf("failed to open PPT file: %w", err)
	}
	return previewPresentation(pres), nil
}

func previewPresentation(p *ppt.Presentation) DeckPreview {
	slides := p.GetAllSlides()
	preview := DeckPreview{SlideCount: len(slides)}

	for _, slide := range slides {
		var sp SlidePreview
		titled := false
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			texts := shapeTexts(rts)
			if !titled && rts.GetName() == string(RegionTitle) {
				sp.Title = strings.Join(texts, " ")
				titled = true
				continue
			}
			sp.Texts = append(sp.Texts, texts...)
		}
		if !titled && len(sp.Texts) > 0 {
			sp.Title, sp.Texts = sp.Texts[0], sp.Texts[1:]
		}
		if len(sp.Texts) == 0 {
			sp.Texts = nil
		}
		preview.Slides = append(preview.Slides, sp)
	}
	return preview
}

// shapeTexts returns the non-blank paragraphs of a text shape.
func shapeTexts(rts *ppt.RichTextShape) []string {
	var texts []string
	for _, para := range rts.GetParagraphs() {
		var text string
		for _, elem := range para.GetElements() {
			if run, ok := elem.(*ppt.TextRun); ok {
				text += run.GetText()
			}
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
