package practice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLocatorBestPracticesHTML_Deterministic(t *testing.T) {
	first := GenerateLocatorBestPracticesHTML()
	second := GenerateLocatorBestPracticesHTML()

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "<!DOCTYPE html>"))
	assert.Contains(t, first, "<title>Locator Best Practices - Practice Page</title>")
	assert.Contains(t, first, "</html>")
}

func TestGenerateLocatorBestPracticesHTML_SelfContained(t *testing.T) {
	page := GenerateLocatorBestPracticesHTML()

	assert.Contains(t, page, "<style>")
	assert.Contains(t, page, "<script>")
	assert.NotContains(t, page, "<link ")
	assert.NotContains(t, page, "<script src")
}

func TestGenerateLocatorBestPracticesHTML_EveryScenarioRendered(t *testing.T) {
	page := GenerateLocatorBestPracticesHTML()
	for _, s := range Scenarios() {
		assert.Contains(t, page, `id="`+s.ID+`"`, s.ID)
		assert.Contains(t, page, `href="#`+s.ID+`"`, s.ID)
	}
}

func TestWritePracticePage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WritePracticePage(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Locator-Best-Practices-Practice-Page.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, GenerateLocatorBestPracticesHTML(), string(content))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		selector string
		status   MatchStatus
		count    int
	}{
		{"#username", MatchUnique, 1},
		{"[data-testid='login-submit']", MatchUnique, 1},
		{"tr[data-row-id='E103'] td.dept", MatchUnique, 1},
		{"#employee-table tbody tr", MatchAmbiguous, 5},
		{".product-name", MatchAmbiguous, 4},
		{"div.product[data-sku='SKU-002'] .add-to-cart", MatchUnique, 1},
		{"#does-not-exist", MatchNone, 0},
		// generated by script at runtime
		{"#shadow-input", MatchNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			m, err := Evaluate(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.status, m.Status)
			assert.Equal(t, tt.count, m.Count)
			assert.Len(t, m.Elements, tt.count)
		})
	}
}

func TestEvaluate_ElementDetails(t *testing.T) {
	m, err := Evaluate("  #username ")
	require.NoError(t, err)
	require.Len(t, m.Elements, 1)

	e := m.Elements[0]
	assert.Equal(t, "#username", m.Selector)
	assert.Equal(t, "input", e.Tag)
	assert.Equal(t, "username", e.ID)
	assert.Equal(t, "username", e.Attrs["name"])
	assert.Equal(t, "username-input", e.Attrs["data-testid"])
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := Evaluate("   ")
	assert.ErrorIs(t, err, ErrEmptySelector)

	_, err = Evaluate("div[")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selector")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "ab...", clip("abcdef", 2))
}
