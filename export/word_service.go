package export

import (
	"fmt"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/VantageDataChat/GoWord/style"

	"seleniumguide/catalog"
)

// WordExportService writes section study notes using GoWord (pure Go)
type WordExportService struct{}

// NewWordExportService creates a new Word export service
func NewWordExportService() *WordExportService {
	return &WordExportService{}
}

const wordTableWidth = 9000

// Format implements Exporter.
func (s *WordExportService) Format() Format { return FormatDOCX }

// Export implements Exporter.
func (s *WordExportService) Export(data catalog.SectionPPTData) ([]byte, error) {
	return s.ExportSectionToWord(data)
}

// ExportSectionToWord renders the section as a document with one heading per
// slide.
func (s *WordExportService) ExportSectionToWord(data catalog.SectionPPTData) ([]byte, error) {
	doc := goword.New()
	doc.Properties.Title = data.SectionTitle
	doc.Properties.Creator = DocumentAuthor
	doc.Properties.Description = DocumentSubject(data)

	sec := doc.AddSection()

	// code blocks go in a shaded single-cell table
	addCodeBlock := func(code string) {
		ts := &style.TableStyle{Width: wordTableWidth, Alignment: "center"}
		ts.SetAllBorders("single", 4, "CBD5E1")
		tbl := sec.AddTable(ts)
		cell := tbl.AddRow(0, nil).AddCell(wordTableWidth, &style.CellStyle{
			Shading: &style.Shading{Fill: "F1F5F9"},
		})
		for _, line := range codeLines(code) {
			cell.AddText(line, &style.FontStyle{Size: 9, Color: "1E293B"}, nil)
		}
	}

	addTable := func(table *catalog.Table) {
		cols := table.Columns()
		colWidth := wordTableWidth / cols

		ts := &style.TableStyle{Width: wordTableWidth, Alignment: "center"}
		ts.SetAllBorders("single", 4, "D9D9D9")
		tbl := sec.AddTable(ts)
		tbl.Grid = make([]int, cols)
		for i := range tbl.Grid {
			tbl.Grid[i] = colWidth
		}

		if len(table.Headers) > 0 {
			headerRow := tbl.AddRow(0, &style.RowStyle{IsHeader: true})
			for _, h := range table.Headers {
				headerRow.AddCell(colWidth, &style.CellStyle{
					Shading: &style.Shading{Fill: "3B82F6"},
				}).AddText(h, &style.FontStyle{Bold: true, Size: 10, Color: "FFFFFF"}, nil)
			}
		}

		for _, rowData := range table.Rows {
			row := tbl.AddRow(0, nil)
			for i := 0; i < cols; i++ {
				cell := ""
				if i < len(rowData) {
					cell = rowData[i]
				}
				row.AddCell(colWidth, nil).AddText(cell, &style.FontStyle{Size: 10}, nil)
			}
		}
	}

	sec.AddText(SectionLabel(data.SectionNumber),
		&style.FontStyle{Bold: true, Size: 11, Color: "3B82F6"},
		&style.ParagraphStyle{Alignment: style.AlignCenter})
	sec.AddTitle(data.SectionTitle, 1)
	sec.AddText(titleSlideSubtitle,
		&style.FontStyle{Size: 10, Color: "64748B"},
		&style.ParagraphStyle{Alignment: style.AlignCenter})
	sec.AddTextBreak(1)

	for _, slide := range data.Slides {
		sec.AddTitle(slide.Title, 2)

		for _, p := range slide.Content {
			sec.AddText(p,
				&style.FontStyle{Size: 11, Color: "334155"},
				&style.ParagraphStyle{SpaceAfter: 120})
		}
		for _, b := range slide.BulletPoints {
			sec.AddText("• "+b,
				&style.FontStyle{Size: 11, Color: "334155"},
				&style.ParagraphStyle{Indent: 360})
		}

		if slide.HasCode() {
			if slide.CodeExplanation != "" {
				sec.AddText("Explanation: "+slide.CodeExplanation,
					&style.FontStyle{Size: 10, Color: "64748B", Italic: true},
					nil)
			}
			if slide.CodeTitle != "" {
				sec.AddText(slide.CodeTitle,
					&style.FontStyle{Bold: true, Size: 10, Color: "64748B"},
					nil)
			}
			addCodeBlock(slide.Code)
		}

		if slide.HasTable() {
			addTable(slide.Table)
		}
		sec.AddTextBreak(1)
	}

	sec.AddText("Generated by "+DocumentAuthor,
		&style.FontStyle{Size: 9, Color: "94A3B8"},
		&style.ParagraphStyle{Alignment: style.AlignCenter})

	out, err := doc.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write Word file: %w", err)
	}
	return out, nil
}
