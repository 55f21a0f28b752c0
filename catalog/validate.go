package catalog

import "fmt"

// Issue is a non-fatal problem found in section data.
type Issue struct {
	Slide   int    `json:"slide"` // 1-based, 0 for section level
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Slide == 0 {
		return i.Message
	}
	return fmt.Sprintf("slide %d: %s", i.Slide, i.Message)
}

// MaxSectionNumber is the size of the fixed curriculum.
const MaxSectionNumber = 12

// Validate reports conventions the data breaks. Nothing here stops an export:
// renderers pad short table rows and drop extra cells.
func Validate(data SectionPPTData) []Issue {
	var issues []Issue

	if data.SectionNumber < 1 || data.SectionNumber > MaxSectionNumber {
		issues = append(issues, Issue{Message: fmt.Sprintf("section number %d outside 1..%d", data.SectionNumber, MaxSectionNumber)})
	}
	if data.SectionTitle == "" {
		issues = append(issues, Issue{Message: "empty section title"})
	}

	for i, s := range data.Slides {
		n := i + 1
		if s.Title == "" {
			issues = append(issues, Issue{Slide: n, Message: "empty slide title"})
		}
		if s.Table == nil {
			continue
		}
		if len(s.Table.Headers) == 0 {
			issues = append(issues, Issue{Slide: n, Message: "table without headers"})
			continue
		}
		for r, row := range s.Table.Rows {
			if len(row) != len(s.Table.Headers) {
				issues = append(issues, Issue{
					Slide:   n,
					Message: fmt.Sprintf("table row %d has %d cells, expected %d", r+1, len(row), len(s.Table.Headers)),
				})
			}
		}
	}
	return issues
}

// ValidateAll runs Validate over every section, keyed by section id. Sections
// without issues are omitted.
func (c *Catalog) ValidateAll() map[string][]Issue {
	out := make(map[string][]Issue)
	for _, id := range c.IDs() {
		if issues := Validate(c.content[id]); len(issues) > 0 {
			out[id] = issues
		}
	}
	return out
}
