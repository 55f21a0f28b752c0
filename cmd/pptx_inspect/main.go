package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"seleniumguide/export"
)

// toUTF8 repairs text written by tools that stored Windows-1252 bytes.
func toUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "�")
	}
	return decoded
}

func main() {
	asJSON := flag.Bool("json", false, "print the preview as JSON")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("Usage: pptx_inspect [-json] <file.pptx>")
		os.Exit(1)
	}

	preview, err := export.PreviewFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error opening pptx: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(preview); err != nil {
			fmt.Printf("Error encoding preview: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%s: %d slides\n", flag.Arg(0), preview.SlideCount)
	for i, slide := range preview.Slides {
		fmt.Printf("\n=== Slide %d: %s ===\n", i+1, toUTF8(slide.Title))
		for _, text := range slide.Texts {
			fmt.Printf("  %s\n", toUTF8(text))
		}
	}
}
