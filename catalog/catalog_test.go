package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogHasTwelveOrderedSections(t *testing.T) {
	c := Default()
	sections := c.Sections()
	require.Len(t, sections, MaxSectionNumber)

	for i, s := range sections {
		assert.Equal(t, i+1, s.Number, "section %s out of order", s.ID)
		data, ok := c.Lookup(s.ID)
		require.True(t, ok, "no content for %s", s.ID)
		assert.Equal(t, s.Title, data.SectionTitle)
		assert.Equal(t, s.Number, data.SectionNumber)
		assert.NotEmpty(t, data.Slides, "section %s has no slides", s.ID)
	}
}

func TestDefaultCatalogIsClean(t *testing.T) {
	assert.Empty(t, Default().ValidateAll())
}

func TestLookupUnknownSection(t *testing.T) {
	_, ok := Default().Lookup("does-not-exist")
	assert.False(t, ok)
	_, ok = Default().Section("does-not-exist")
	assert.False(t, ok)
}

func TestShadowDOMSectionTitle(t *testing.T) {
	data, ok := Default().Lookup("shadow-dom-advanced")
	require.True(t, ok)
	assert.Equal(t, "Shadow DOM & Advanced", data.SectionTitle)
	assert.Equal(t, 11, data.SectionNumber)
}

func TestLoadOrdersByNumberAndRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"d/b.yaml":    {Data: []byte("id: second\nnumber: 2\ntitle: Second\nslides:\n  - title: Only\n")},
		"d/a.yaml":    {Data: []byte("id: first\nnumber: 1\ntitle: First\nslides: []\n")},
		"d/notes.txt": {Data: []byte("ignored")},
	}
	c, err := Load(fsys, "d")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, c.IDs())

	second, ok := c.Lookup("second")
	require.True(t, ok)
	require.Len(t, second.Slides, 1)
	assert.Equal(t, "Only", second.Slides[0].Title)
	assert.False(t, second.Slides[0].HasCode())
	assert.False(t, second.Slides[0].HasTable())

	fsys["d/c.yaml"] = &fstest.MapFile{Data: []byte("id: first\nnumber: 3\ntitle: Again\n")}
	_, err = Load(fsys, "d")
	assert.ErrorContains(t, err, "duplicate section id")
}

func TestLoadRejectsMissingID(t *testing.T) {
	fsys := fstest.MapFS{"d/x.yaml": {Data: []byte("number: 1\ntitle: No id\n")}}
	_, err := Load(fsys, "d")
	assert.ErrorContains(t, err, "missing section id")
}

func TestValidateReportsMismatchedRows(t *testing.T) {
	data := SectionPPTData{
		SectionTitle:  "Tables",
		SectionNumber: 13,
		Slides: []SlideContent{
			{Title: ""},
			{Title: "Grid", Table: &Table{
				Headers: []string{"A", "B"},
				Rows:    [][]string{{"1", "2"}, {"only"}, {"1", "2", "3"}},
			}},
		},
	}

	issues := Validate(data)
	var messages []string
	for _, is := range issues {
		messages = append(messages, is.String())
	}
	assert.Equal(t, []string{
		"section number 13 outside 1..12",
		"slide 1: empty slide title",
		"slide 2: table row 2 has 1 cells, expected 2",
		"slide 2: table row 3 has 3 cells, expected 2",
	}, messages)
}

func TestTableColumns(t *testing.T) {
	var none *Table
	assert.Equal(t, 0, none.Columns())
	assert.Equal(t, 2, (&Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2", "3"}}}).Columns())
	assert.Equal(t, 3, (&Table{Rows: [][]string{{"a"}, {"a", "b", "c"}}}).Columns())

	assert.True(t, SlideContent{Table: &Table{Rows: [][]string{{"a", "b"}}}}.HasTable(), "rows without headers still render")
	assert.False(t, SlideContent{Table: &Table{}}.HasTable())
	assert.False(t, SlideContent{}.HasTable())
}
