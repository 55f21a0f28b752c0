// Package practice builds the downloadable locator practice page and checks
// CSS selectors against it.
package practice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// PracticeFileName is the name the page is saved under.
const PracticeFileName = "Locator-Best-Practices-Practice-Page.html"

// Tip recommends one locator for an element in a scenario.
type Tip struct {
	Strategy string
	Selector string
	Note     string
}

// Scenario is one practice area on the page.
type Scenario struct {
	ID      string
	Title   string
	Summary string
	Tips    []Tip
}

type employee struct {
	ID         string
	Name       string
	Department string
	Status     string
}

type country struct {
	Code string
	Name string
}

type product struct {
	SKU   string
	Name  string
	Price string
}

type pageData struct {
	Title     string
	Subtitle  string
	Footer    string
	Scenarios []Scenario
	Employees []employee
	Countries []country
	Products  []product
}

var page = pageData{
	Title:    "Locator Best Practices - Practice Page",
	Subtitle: "Practice Selenium locators against stable, realistic markup.",
	Footer:   "Selenium WebDriver Training - Locator Practice",
	Scenarios: []Scenario{
		{
			ID:      "login",
			Title:   "1. Login Form",
			Summary: "Prefer unique ids and names. Fall back to data-testid attributes when ids are generated.",
			Tips: []Tip{
				{"ID", "#username", "Fastest and most stable when the id is unique"},
				{"Name", "input[name='password']", "Good for form fields"},
				{"Test attribute", "[data-testid='login-submit']", "Survives styling and text changes"},
				{"Link text", "Forgot password?", "Only for anchors with stable text"},
			},
		},
		{
			ID:      "tables",
			Title:   "2. Data Tables",
			Summary: "Locate rows by a stable attribute, then cells relative to the row.",
			Tips: []Tip{
				{"CSS attribute", "tr[data-row-id='E103']", "Targets one row without relying on position"},
				{"Relative CSS", "tr[data-row-id='E103'] td.dept", "Scopes the cell to its row"},
				{"XPath text", "//td[text()='Priya Sharma']/following-sibling::td[@class='dept']", "Use when only visible text identifies the row"},
			},
		},
		{
			ID:      "dropdowns",
			Title:   "3. Dropdowns, Radios and Checkboxes",
			Summary: "Use the Select helper for native selects and value attributes for grouped inputs.",
			Tips: []Tip{
				{"ID", "#country", "Wrap with new Select(element)"},
				{"CSS attribute", "input[name='gender'][value='female']", "Pick one radio from a group"},
				{"CSS attribute", "#hobbies input[value='music']", "Scope checkboxes to their fieldset"},
			},
		},
		{
			ID:      "dynamic",
			Title:   "4. Dynamic Content and Waits",
			Summary: "Elements appear after a delay. Use explicit waits, never Thread.sleep.",
			Tips: []Tip{
				{"ID", "#item-1", "Wait with visibilityOfElementLocated"},
				{"ID", "#hidden-message", "Check isDisplayed before interacting"},
				{"ID", "#enable-later", "Wait with elementToBeClickable"},
			},
		},
		{
			ID:      "products",
			Title:   "5. Repeated Components",
			Summary: "Many elements share a class. Narrow down with a parent attribute.",
			Tips: []Tip{
				{"CSS attribute", "div.product[data-sku='SKU-002'] .add-to-cart", "Unique button inside a repeated card"},
				{"Class name", ".product-name", "Returns every card title, use findElements"},
				{"XPath text", "//h3[text()='Wireless Mouse']/ancestor::div[contains(@class,'product')]", "Walk up from visible text"},
			},
		},
		{
			ID:      "alerts",
			Title:   "6. Alerts and Frames",
			Summary: "Switch to the alert or frame before locating anything inside it.",
			Tips: []Tip{
				{"ID", "#confirm-btn", "Then driver.switchTo().alert()"},
				{"Frame name", "practiceFrame", "driver.switchTo().frame(\"practiceFrame\")"},
				{"ID", "#frame-btn", "Only reachable after switching into the frame"},
			},
		},
		{
			ID:      "shadow",
			Title:   "7. Shadow DOM",
			Summary: "Shadow roots hide their children from document queries.",
			Tips: []Tip{
				{"ID", "#shadow-host", "Get the host, then getShadowRoot()"},
				{"CSS in shadow root", "#shadow-input", "Search from the SearchContext returned by getShadowRoot()"},
			},
		},
	},
	Employees: []employee{
		{"E101", "Alice Johnson", "Engineering", "Active"},
		{"E102", "Bob Smith", "Marketing", "On Leave"},
		{"E103", "Priya Sharma", "QA", "Active"},
		{"E104", "Chen Wei", "Engineering", "Active"},
		{"E105", "Maria Garcia", "Finance", "Inactive"},
	},
	Countries: []country{
		{"in", "India"},
		{"us", "United States"},
		{"uk", "United Kingdom"},
		{"de", "Germany"},
		{"jp", "Japan"},
	},
	Products: []product{
		{"SKU-001", "Mechanical Keyboard", "$89.99"},
		{"SKU-002", "Wireless Mouse", "$29.99"},
		{"SKU-003", "USB-C Hub", "$45.00"},
		{"SKU-004", "27\" Monitor", "$279.00"},
	},
}

var (
	tmplOnce sync.Once
	tmpl     *template.Template
	tmplErr  error
)

func pageTemplate() (*template.Template, error) {
	tmplOnce.Do(func() {
		tmpl, tmplErr = template.ParseFS(templateFS, "templates/locators.gohtml")
	})
	return tmpl, tmplErr
}

// Scenarios returns the practice areas shown on the page, in page order.
func Scenarios() []Scenario {
	out := make([]Scenario, len(page.Scenarios))
	copy(out, page.Scenarios)
	return out
}

// Render executes the page template.
func Render() ([]byte, error) {
	t, err := pageTemplate()
	if err != nil {
		return nil, fmt.Errorf("parse practice template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "locators.gohtml", page); err != nil {
		return nil, fmt.Errorf("render practice page: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateLocatorBestPracticesHTML returns the complete practice page. The
// output is the same on every call.
func GenerateLocatorBestPracticesHTML() string {
	out, err := Render()
	if err != nil {
		// the template is embedded, so this only fails on a broken build
		panic(err)
	}
	return string(out)
}

// WritePracticePage saves the page as PracticeFileName inside dir and returns
// the full path.
func WritePracticePage(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, PracticeFileName)
	if err := os.WriteFile(path, []byte(GenerateLocatorBestPracticesHTML()), 0644); err != nil {
		return "", fmt.Errorf("write practice page: %w", err)
	}
	return path, nil
}
