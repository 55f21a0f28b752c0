// Package catalog holds the static Selenium curriculum: section metadata and
// the slide descriptors every exporter reads. The data is embedded into the
// binary and decoded once; nothing mutates it afterwards.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedData embed.FS

// Table is a header row plus body rows. Rows are not required to match the
// header length.
type Table struct {
	Headers []string   `yaml:"headers" json:"headers"`
	Rows    [][]string `yaml:"rows" json:"rows"`
}

// Columns is the grid width: the header length, or the widest row when the
// table has no headers.
func (t *Table) Columns() int {
	if t == nil {
		return 0
	}
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	cols := 0
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	return cols
}

// SlideContent describes one exportable slide. Only Title is required; every
// other field is rendered when present, in a fixed order.
type SlideContent struct {
	Title           string   `yaml:"title" json:"title"`
	Content         []string `yaml:"content,omitempty" json:"content,omitempty"`
	Code            string   `yaml:"code,omitempty" json:"code,omitempty"`
	CodeTitle       string   `yaml:"codeTitle,omitempty" json:"codeTitle,omitempty"`
	CodeExplanation string   `yaml:"codeExplanation,omitempty" json:"codeExplanation,omitempty"`
	BulletPoints    []string `yaml:"bulletPoints,omitempty" json:"bulletPoints,omitempty"`
	Table           *Table   `yaml:"table,omitempty" json:"table,omitempty"`
}

// HasContent reports whether paragraphs are present.
func (s SlideContent) HasContent() bool { return len(s.Content) > 0 }

// HasBullets reports whether bullet points are present.
func (s SlideContent) HasBullets() bool { return len(s.BulletPoints) > 0 }

// HasCode reports whether a code block is present.
func (s SlideContent) HasCode() bool { return s.Code != "" }

// HasTable reports whether a table with at least one column is present. A
// table without headers still counts when it has rows.
func (s SlideContent) HasTable() bool { return s.Table.Columns() > 0 }

// SectionPPTData is the export input for one curriculum section.
type SectionPPTData struct {
	SectionTitle  string         `json:"sectionTitle"`
	SectionNumber int            `json:"sectionNumber"`
	Slides        []SlideContent `json:"slides"`
}

// Section is navigation metadata. It is not part of any export.
type Section struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	ShortTitle  string `json:"shortTitle"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// sectionFile is the on-disk shape of one data/*.yaml document.
type sectionFile struct {
	ID          string         `yaml:"id"`
	Number      int            `yaml:"number"`
	Title       string         `yaml:"title"`
	ShortTitle  string         `yaml:"shortTitle"`
	Icon        string         `yaml:"icon"`
	Color       string         `yaml:"color"`
	Description string         `yaml:"description"`
	Slides      []SlideContent `yaml:"slides"`
}

// Catalog maps section ids to their slides.
type Catalog struct {
	sections []Section
	content  map[string]SectionPPTData
	meta     map[string]Section
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the embedded catalog. Malformed embedded data is a build
// defect, so it panics instead of returning an error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embeddedData, "data")
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load decodes every *.yaml document under dir and orders the sections by
// their number.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog dir %q: %w", dir, err)
	}

	c := &Catalog{
		content: make(map[string]SectionPPTData),
		meta:    make(map[string]Section),
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var sf sectionFile
		if err := yaml.Unmarshal(raw, &sf); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", entry.Name(), err)
		}
		if sf.ID == "" {
			return nil, fmt.Errorf("%s: missing section id", entry.Name())
		}
		if _, dup := c.meta[sf.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate section id %q", entry.Name(), sf.ID)
		}

		section := Section{
			ID:          sf.ID,
			Number:      sf.Number,
			Title:       sf.Title,
			ShortTitle:  sf.ShortTitle,
			Icon:        sf.Icon,
			Color:       sf.Color,
			Description: sf.Description,
		}
		c.sections = append(c.sections, section)
		c.meta[sf.ID] = section
		c.content[sf.ID] = SectionPPTData{
			SectionTitle:  sf.Title,
			SectionNumber: sf.Number,
			Slides:        sf.Slides,
		}
	}

	sort.SliceStable(c.sections, func(i, j int) bool {
		return c.sections[i].Number < c.sections[j].Number
	})
	return c, nil
}

// Sections returns section metadata in curriculum order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Section returns the metadata for id.
func (c *Catalog) Section(id string) (Section, bool) {
	s, ok := c.meta[id]
	return s, ok
}

// Lookup returns the export data for id.
func (c *Catalog) Lookup(id string) (SectionPPTData, bool) {
	d, ok := c.content[id]
	return d, ok
}

// IDs returns the section ids in curriculum order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.sections))
	for _, s := range c.sections {
		ids = append(ids, s.ID)
	}
	return ids
}
