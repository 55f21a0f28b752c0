package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"seleniumguide/catalog"
)

// PDFExportService renders a section as a printable handout using maroto
type PDFExportService struct{}

// NewPDFExportService creates a new PDF export service
func NewPDFExportService() *PDFExportService {
	return &PDFExportService{}
}

var (
	pdfPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	pdfAccent  = &props.Color{Red: 59, Green: 130, Blue: 246}
	pdfMuted   = &props.Color{Red: 100, Green: 116, Blue: 139}
	pdfCode    = &props.Color{Red: 30, Green: 41, Blue: 59}
)

// roughly how many characters of body text fit on one line of a full-width column
const pdfCharsPerLine = 95

// Format implements Exporter.
func (s *PDFExportService) Format() Format { return FormatPDF }

// Export implements Exporter.
func (s *PDFExportService) Export(data catalog.SectionPPTData) ([]byte, error) {
	return s.ExportSectionToPDF(data)
}

// ExportSectionToPDF writes every slide of the section as consecutive blocks
// of a PDF handout.
func (s *PDFExportService) ExportSectionToPDF(data catalog.SectionPPTData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithAuthor(DocumentAuthor, true).
		WithTitle(data.SectionTitle, true).
		WithSubject(DocumentSubject(data), true).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Arial,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)

	s.addHeader(m, data)
	for i, slide := range data.Slides {
		s.addSlide(m, i+1, slide)
	}
	s.addFooter(m)

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

func (s *PDFExportService) addHeader(m core.Maroto, data catalog.SectionPPTData) {
	m.AddRow(8,
		col.New(12).Add(
			text.New(SectionLabel(data.SectionNumber), props.Text{
				Family: fontfamily.Arial,
				Size:   11,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfAccent,
			}),
		),
	)
	m.AddRow(14,
		col.New(12).Add(
			text.New(data.SectionTitle, props.Text{
				Family: fontfamily.Arial,
				Size:   20,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfPrimary,
			}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New(titleSlideSubtitle, props.Text{
				Family: fontfamily.Arial,
				Size:   10,
				Align:  align.Center,
				Color:  pdfMuted,
			}),
		),
	)
	m.AddRow(6)
}

func (s *PDFExportService) addSlide(m core.Maroto, n int, slide catalog.SlideContent) {
	m.AddRow(10,
		col.New(12).Add(
			text.New(fmt.Sprintf("%d. %s", n, slide.Title), props.Text{
				Family: fontfamily.Arial,
				Size:   13,
				Style:  fontstyle.Bold,
				Color:  pdfPrimary,
			}),
		),
	)

	for _, p := range slide.Content {
		s.addBody(m, p)
	}
	for _, b := range slide.BulletPoints {
		s.addBody(m, "• "+b)
	}

	if slide.HasCode() {
		if slide.CodeExplanation != "" {
			s.addCaption(m, "Explanation: "+slide.CodeExplanation)
		}
		if slide.CodeTitle != "" {
			s.addCaption(m, slide.CodeTitle)
		}
		for _, line := range codeLines(slide.Code) {
			m.AddRow(4.5,
				col.New(12).Add(
					text.New(line, props.Text{
						Family: fontfamily.Courier,
						Size:   8,
						Color:  pdfCode,
					}),
				),
			)
		}
		m.AddRow(3)
	}

	if slide.HasTable() {
		s.addTable(m, slide.Table)
	}
	m.AddRow(5)
}

func (s *PDFExportService) addBody(m core.Maroto, body string) {
	lines := len([]rune(body))/pdfCharsPerLine + 1
	m.AddRow(float64(lines)*5+1,
		col.New(12).Add(
			text.New(body, props.Text{
				Family: fontfamily.Arial,
				Size:   10,
			}),
		),
	)
}

func (s *PDFExportService) addCaption(m core.Maroto, caption string) {
	m.AddRow(6,
		col.New(12).Add(
			text.New(caption, props.Text{
				Family: fontfamily.Arial,
				Size:   9,
				Style:  fontstyle.Italic,
				Color:  pdfMuted,
			}),
		),
	)
}

// addTable uses the grid width of 12; columns beyond 12 are dropped.
func (s *PDFExportService) addTable(m core.Maroto, table *catalog.Table) {
	headers := table.Headers
	numCols := min(table.Columns(), 12)
	if len(headers) > numCols {
		headers = headers[:numCols]
	}
	colWidth := 12 / numCols

	headerCols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		headerCols = append(headerCols, col.New(colWidth).Add(
			text.New(h, props.Text{
				Family: fontfamily.Arial,
				Size:   9,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfAccent,
			}),
		))
	}
	if len(headerCols) > 0 {
		m.AddRow(7, headerCols...)
	}

	for _, row := range table.Rows {
		cols := make([]core.Col, 0, numCols)
		longest := 0
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if n := len([]rune(cell)); n > longest {
				longest = n
			}
			cols = append(cols, col.New(colWidth).Add(
				text.New(cell, props.Text{
					Family: fontfamily.Arial,
					Size:   8,
					Align:  align.Left,
				}),
			))
		}
		perCell := pdfCharsPerLine * colWidth / 12
		lines := longest/max(perCell, 1) + 1
		m.AddRow(float64(lines)*4.5+1.5, cols...)
	}
}

func (s *PDFExportService) addFooter(m core.Maroto) {
	m.AddRow(10,
		col.New(12).Add(
			text.New("Generated by "+DocumentAuthor, props.Text{
				Family: fontfamily.Arial,
				Size:   8,
				Align:  align.Center,
				Color:  pdfMuted,
			}),
		),
	)
}
