package export

import (
	"bytes"
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"seleniumguide/catalog"
)

// GoPPTService builds section slide decks using GoPPT (pure Go, zero dependencies)
type GoPPTService struct {
	author string
}

// NewGoPPTService creates a new GoPPT service
func NewGoPPTService() *GoPPTService {
	return &GoPPTService{author: DocumentAuthor}
}

const emuPerInch = 914400

// PPT font sizes (pt)
const (
	gopptFontSectionLabel = 18
	gopptFontDeckTitle    = 36
	gopptFontDeckSubtitle = 20
	gopptFontSlideTitle   = 26
	gopptFontBody         = 14
	gopptFontCaption      = 12
	gopptFontCode         = 11
	gopptFontTableHead    = 12
	gopptFontTableCell    = 11
)

func inch(v float64) int64 {
	return int64(v * emuPerInch)
}

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// Format implements Exporter.
func (s *GoPPTService) Format() Format { return FormatPPTX }

// Export implements Exporter.
func (s *GoPPTService) Export(data catalog.SectionPPTData) ([]byte, error) {
	return s.GenerateSectionPPT(data)
}

// GenerateSectionPPT renders one section as a PPTX file: a title slide, one
// slide per descriptor in input order, and a closing slide.
func (s *GoPPTService) GenerateSectionPPT(data catalog.SectionPPTData) ([]byte, error) {
	p := s.BuildSectionPresentation(data)

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildSectionPresentation assembles the in-memory deck without serializing it.
func (s *GoPPTService) BuildSectionPresentation(data catalog.SectionPPTData) *ppt.Presentation {
	p := ppt.New()
	props := p.GetDocumentProperties()
	props.Creator = s.author
	props.Title = data.SectionTitle
	props.Subject = DocumentSubject(data)

	deck := DeckLayout(data)
	for i, layout := range deck {
		var slide *ppt.Slide
		if i == 0 {
			// a new presentation starts with one empty slide
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		applySlideTemplate(slide)
		drawLayout(slide, layout)
	}
	return p
}

// applySlideTemplate paints the shared white background.
func applySlideTemplate(slide *ppt.Slide) {
	bg := slide.CreateRichTextShape()
	bg.SetOffsetX(0).SetOffsetY(0)
	bg.SetWidth(inch(slideWidth)).SetHeight(inch(slideHeight))
	bg.SetFill(solidFill(colorWhite))
}

func drawLayout(slide *ppt.Slide, layout SlideLayout) {
	for _, r := range layout.Regions {
		drawRegion(slide, r)
	}
}

func drawRegion(slide *ppt.Slide, r Region) {
	shape := slide.CreateRichTextShape()
	shape.SetName(string(r.Kind))
	shape.SetOffsetX(inch(r.X)).SetOffsetY(inch(r.Y))
	shape.SetWidth(inch(r.W)).SetHeight(inch(r.H))
	if r.Fill != "" {
		shape.SetFill(solidFill(r.Fill))
	}

	for i, line := range r.Lines {
		if i > 0 {
			shape.CreateParagraph()
		}
		text := line
		if text == "" {
			text = " "
		}
		styleRun(shape.CreateTextRun(text), r.Style)
		if r.Centered {
			alignCenter(shape.GetActiveParagraph())
		}
	}
}

func styleRun(tr *ppt.TextRun, style TextStyle) {
	font := tr.GetFont()
	switch style {
	case StyleSectionLabel:
		font.SetSize(gopptFontSectionLabel).SetBold(true).SetColor(ppt.NewColor(colorAccent))
	case StyleDeckTitle:
		font.SetSize(gopptFontDeckTitle).SetBold(true).SetColor(ppt.NewColor(colorPrimary))
	case StyleDeckSubtitle:
		font.SetSize(gopptFontDeckSubtitle).SetColor(ppt.NewColor(colorMuted))
	case StyleSlideTitle:
		font.SetSize(gopptFontSlideTitle).SetBold(true).SetColor(ppt.NewColor(colorPrimary))
	case StyleCaption:
		font.SetSize(gopptFontCaption).SetBold(true).SetColor(ppt.NewColor(colorMuted))
	case StyleCode:
		font.SetSize(gopptFontCode).SetColor(ppt.NewColor(colorCodeText))
	case StyleTableHeader:
		font.SetSize(gopptFontTableHead).SetBold(true).SetColor(ppt.ColorWhite)
	case StyleTableCell:
		font.SetSize(gopptFontTableCell).SetColor(ppt.NewColor(colorText))
	default:
		font.SetSize(gopptFontBody).SetColor(ppt.NewColor(colorText))
	}
}
