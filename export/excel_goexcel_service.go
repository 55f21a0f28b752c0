package export

import (
	"bytes"
	"fmt"
	"strings"

	gospreadsheet "github.com/VantageDataChat/GoExcel"

	"seleniumguide/catalog"
)

// GoExcelExportService writes a section workbook using GoExcel (pure Go).
// The first sheet indexes the slides; every slide with a table gets its own
// sheet.
type GoExcelExportService struct{}

// NewGoExcelExportService creates a new GoExcel export service
func NewGoExcelExportService() *GoExcelExportService {
	return &GoExcelExportService{}
}

const (
	indexSheetName  = "Slides"
	maxSheetNameLen = 31
)

var indexHeaders = []string{"#", "Title", "Content", "Bullets", "Code", "Table"}

// Format implements Exporter.
func (s *GoExcelExportService) Format() Format { return FormatXLSX }

// Export implements Exporter.
func (s *GoExcelExportService) Export(data catalog.SectionPPTData) ([]byte, error) {
	return s.ExportSectionToExcel(data)
}

// ExportSectionToExcel builds the workbook and serializes it.
func (s *GoExcelExportService) ExportSectionToExcel(data catalog.SectionPPTData) ([]byte, error) {
	wb := gospreadsheet.New()

	headerStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
			Name:  "Calibri",
		}).
		SetFill(&gospreadsheet.Fill{
			Type:  "solid",
			Color: "3B82F6",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignCenter,
			Vertical:   gospreadsheet.AlignMiddle,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
		})

	dataStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Size: 10,
			Name: "Calibri",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
		})

	// Index sheet
	ws := wb.GetActiveSheet()
	ws.SetTitle(indexSheetName)

	for i, h := range indexHeaders {
		cellName, _ := gospreadsheet.CellName(0, i)
		ws.SetCellValue(cellName, h)
		ws.SetCellStyle(cellName, headerStyle)
	}
	ws.SetRowHeight(0, 25)
	ws.SetColumnWidth(0, 6)
	ws.SetColumnWidth(1, 40)
	ws.SetColumnWidth(2, 60)
	ws.SetColumnWidth(3, 60)
	ws.SetColumnWidth(4, 10)
	ws.SetColumnWidth(5, 10)

	for i, slide := range data.Slides {
		row := i + 1
		values := []string{
			fmt.Sprintf("%d", row),
			slide.Title,
			strings.Join(slide.Content, "\n"),
			strings.Join(slide.BulletPoints, "\n"),
			yesNo(slide.HasCode()),
			yesNo(slide.HasTable()),
		}
		for colIdx, v := range values {
			cellName, _ := gospreadsheet.CellName(row, colIdx)
			ws.SetCellValue(cellName, v)
			ws.SetCellStyle(cellName, dataStyle)
		}
	}
	ws.FreezePane("A2")

	// One sheet per table
	used := map[string]bool{indexSheetName: true}
	for i, slide := range data.Slides {
		if !slide.HasTable() {
			continue
		}
		name := tableSheetName(i+1, slide.Title, used)
		used[name] = true

		ts, err := wb.AddSheet(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		cols := slide.Table.Columns()
		first := 0
		if len(slide.Table.Headers) > 0 {
			first = 1
			ts.SetRowHeight(0, 25)
		}
		for colIdx, h := range slide.Table.Headers {
			cellName, _ := gospreadsheet.CellName(0, colIdx)
			ts.SetCellValue(cellName, h)
			ts.SetCellStyle(cellName, headerStyle)

			width := float64(len([]rune(h))) * 2.5
			if width < 16 {
				width = 16
			}
			if width > 60 {
				width = 60
			}
			ts.SetColumnWidth(colIdx, width)
		}

		for rowIdx, rowData := range slide.Table.Rows {
			excelRow := rowIdx + first
			for colIdx := 0; colIdx < cols && colIdx < len(rowData); colIdx++ {
				cellName, _ := gospreadsheet.CellName(excelRow, colIdx)
				ts.SetCellValue(cellName, rowData[colIdx])
				ts.SetCellStyle(cellName, dataStyle)
			}
			ts.SetRowHeight(excelRow, 20)
		}
		if first == 1 {
			ts.FreezePane("A2")
		}
	}

	wb.Properties.Title = data.SectionTitle
	wb.Properties.Creator = DocumentAuthor
	wb.Properties.Description = DocumentSubject(data)
	wb.Properties.Subject = DocumentSubject(data)
	wb.Properties.Keywords = "Selenium,WebDriver,Training"
	wb.Properties.Category = "Training"
	wb.Properties.LastModifiedBy = DocumentAuthor

	var buf bytes.Buffer
	writer := gospreadsheet.NewXLSXWriter()
	if err := writer.Write(wb, &buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

var sheetNameReplacer = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "-", "\\", "-",
)

// tableSheetName derives a unique worksheet name of at most 31 characters
// from the slide number and title.
func tableSheetName(n int, title string, used map[string]bool) string {
	base := fmt.Sprintf("%02d %s", n, sheetNameReplacer.Replace(title))
	base = truncateRunes(strings.TrimSpace(base), maxSheetNameLen)

	name := base
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
