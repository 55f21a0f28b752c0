package main

import (
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "github"

// highlightCode renders code as inline-styled HTML. The lexer is picked from
// the file name first (FirstTest.java, test_login.py), then by content.
func highlightCode(code, fileName string) template.HTML {
	var lexer chroma.Lexer
	if fileName != "" {
		lexer = lexers.Match(fileName)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(highlightStyle)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := chromahtml.New(chromahtml.TabWidth(4))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainCode(code)
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return plainCode(code)
	}
	return template.HTML(buf.String())
}

func plainCode(code string) template.HTML {
	return template.HTML("<pre><code>" + html.EscapeString(code) + "</code></pre>")
}
