package export

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"seleniumguide/catalog"
)

// DocumentAuthor is written into every generated file's metadata.
const DocumentAuthor = "Selenium Guide"

// Format identifies an output file type.
type Format string

const (
	FormatPPTX Format = "pptx"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for formats without a registered exporter.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat accepts a format name case-insensitively, with or without a
// leading dot. An empty name means PPTX.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "."))
	if f == "" {
		return FormatPPTX, nil
	}
	switch f {
	case FormatPPTX, FormatPDF, FormatDOCX, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string { return string(f) }

// MimeType returns the Content-Type for the format.
func (f Format) MimeType() string {
	switch f {
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Exporter turns one section into a file of a single format.
type Exporter interface {
	Format() Format
	Export(data catalog.SectionPPTData) ([]byte, error)
}

// Registry maps formats to exporters.
type Registry struct {
	exporters map[Format]Exporter
}

// NewRegistry registers the given exporters, later entries winning.
func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[Format]Exporter)}
	for _, e := range exporters {
		r.exporters[e.Format()] = e
	}
	return r
}

// DefaultRegistry wires every built-in exporter.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewGoPPTService(),
		NewPDFExportService(),
		NewWordExportService(),
		NewGoExcelExportService(),
	)
}

// Get returns the exporter for f.
func (r *Registry) Get(f Format) (Exporter, error) {
	e, ok := r.exporters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return e, nil
}

// Formats lists registered formats in a stable order.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.exporters))
	for f := range r.exporters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// SanitizeTitle replaces every non-alphanumeric character with an underscore.
func SanitizeTitle(title string) string {
	return nonAlnum.ReplaceAllString(title, "_")
}

// SectionFileName builds Section_{NN}_{SanitizedTitle}.{ext}.
func SectionFileName(number int, title string, f Format) string {
	return fmt.Sprintf("Section_%02d_%s.%s", number, SanitizeTitle(title), f.Extension())
}

// DocumentSubject is the metadata subject line shared by all formats.
func DocumentSubject(data catalog.SectionPPTData) string {
	return fmt.Sprintf("Selenium WebDriver Training - Section %d", data.SectionNumber)
}
