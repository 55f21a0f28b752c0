package practice

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// MatchStatus classifies how many elements a selector found.
type MatchStatus string

const (
	MatchUnique    MatchStatus = "unique"
	MatchAmbiguous MatchStatus = "ambiguous"
	MatchNone      MatchStatus = "none"
)

// ErrEmptySelector is returned when no selector was given.
var ErrEmptySelector = errors.New("empty selector")

// Element describes one matched node.
type Element struct {
	Tag   string            `json:"tag"`
	ID    string            `json:"id,omitempty"`
	Class string            `json:"class,omitempty"`
	Text  string            `json:"text,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Match is the result of running a CSS selector against the practice page.
type Match struct {
	Selector string      `json:"selector"`
	Count    int         `json:"count"`
	Status   MatchStatus `json:"status"`
	Elements []Element   `json:"elements"`
}

// element text longer than this is cut
const maxElementText = 80

var (
	docOnce sync.Once
	doc     *goquery.Document
	docErr  error
)

func practiceDocument() (*goquery.Document, error) {
	docOnce.Do(func() {
		doc, docErr = goquery.NewDocumentFromReader(strings.NewReader(GenerateLocatorBestPracticesHTML()))
	})
	return doc, docErr
}

// Evaluate runs a CSS selector against the practice page. Elements created by
// the page's scripts at runtime, such as shadow DOM content, are not visible
// here.
func Evaluate(selector string) (Match, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return Match{}, ErrEmptySelector
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return Match{}, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	d, err := practiceDocument()
	if err != nil {
		return Match{}, fmt.Errorf("parse practice page: %w", err)
	}

	found := d.FindMatcher(sel)
	m := Match{
		Selector: selector,
		Count:    found.Length(),
		Elements: make([]Element, 0, found.Length()),
	}
	switch {
	case m.Count == 0:
		m.Status = MatchNone
	case m.Count == 1:
		m.Status = MatchUnique
	default:
		m.Status = MatchAmbiguous
	}

	found.Each(func(i int, s *goquery.Selection) {
		e := Element{
			Tag:  goquery.NodeName(s),
			Text: clip(strings.Join(strings.Fields(s.Text()), " "), maxElementText),
		}
		e.ID, _ = s.Attr("id")
		e.Class, _ = s.Attr("class")
		for _, name := range []string{"name", "type", "value", "data-testid", "data-sku", "data-row-id"} {
			if v, ok := s.Attr(name); ok {
				if e.Attrs == nil {
					e.Attrs = make(map[string]string)
				}
				e.Attrs[name] = v
			}
		}
		m.Elements = append(m.Elements, e)
	})
	return m, nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
