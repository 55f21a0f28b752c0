package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seleniumguide/catalog"
)

func TestExportersProduceFiles(t *testing.T) {
	data := catalog.SectionPPTData{
		SectionTitle:  "Locators",
		SectionNumber: 3,
		Slides: []catalog.SlideContent{
			{Title: "Overview", Content: []string{"Locators find elements."}},
			{Title: "Priority", BulletPoints: []string{"id", "name", "css"}},
			{
				Title:     "By.id",
				Code:      "driver.findElement(By.id(\"username\"));",
				CodeTitle: "LoginTest.java",
			},
			{
				Title: "Comparison",
				Table: &catalog.Table{
					Headers: []string{"Strategy", "Speed"},
					Rows:    [][]string{{"id", "fastest"}, {"xpath"}},
				},
			},
			{
				Title: "Waits",
				Table: &catalog.Table{Rows: [][]string{{"implicit", "global"}, {"explicit", "per element"}}},
			},
		},
	}

	registry := DefaultRegistry()
	for _, f := range registry.Formats() {
		t.Run(string(f), func(t *testing.T) {
			e, err := registry.Get(f)
			require.NoError(t, err)

			out, err := e.Export(data)
			require.NoError(t, err)
			require.NotEmpty(t, out)

			if f == FormatPDF {
				assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
			} else {
				assert.True(t, bytes.HasPrefix(out, []byte("PK")), "office files are zip archives")
			}
		})
	}
}

func TestTableSheetName(t *testing.T) {
	used := map[string]bool{indexSheetName: true}

	name := tableSheetName(3, "CSS vs XPath: [Comparison]", used)
	assert.Equal(t, "03 CSS vs XPath Comparison", name)
	used[name] = true

	long := tableSheetName(4, "A very long slide title that keeps going on", used)
	assert.LessOrEqual(t, len([]rune(long)), maxSheetNameLen)
	used[long] = true

	again := tableSheetName(4, "A very long slide title that keeps going on", used)
	assert.NotEqual(t, long, again)
	assert.LessOrEqual(t, len([]rune(again)), maxSheetNameLen)
	assert.Contains(t, again, "(2)")
}
