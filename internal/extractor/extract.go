// Package extractor turns a statement PDF into per-page text and, when the
// document allows it, per-character glyph metadata with fill color. Parsers
// consume it as a black box; everything here is provider-independent.
package extractor

import (
	"fmt"
	"os"
	"strings"
)

// Glyph is one rendered text fragment with the raw fill-color operands that
// were active when it was drawn ("0.9 0.1 0.1", "0.5", "rgb(255,0,0)"...).
// Fill is empty when the source carries no color information.
type Glyph struct {
	Text string
	Fill string
}

// Page holds the linearized text of one statement page, 1-based, plus the
// ordered glyph sequence when it could be recovered.
type Page struct {
	Number int
	Text   string
	Glyphs []Glyph
}

// Options configures extraction. OCR is an explicit capability flag: the
// fallback only runs when the caller enables it, never because the tools
// happen to be installed.
type Options struct {
	OCR     bool
	OCRLang string // tesseract language, defaults to "por"
}

func (o Options) lang() string {
	if o.OCRLang != "" {
		return o.OCRLang
	}
	return "por"
}

// strategy is one way of obtaining page text from a PDF. Strategies are
// tried in order until one yields readable output.
type strategy struct {
	name string
	run  func(path string) ([]string, error)
}

func strategies(opts Options) []strategy {
	s := []strategy{
		{name: "pdf-library", run: extractWithLibrary},
		{name: "content-stream", run: extractFromStreams},
		{name: "pdftotext", run: extractWithPdftotext},
	}
	if opts.OCR {
		s = append(s, strategy{name: "ocr", run: func(path string) ([]string, error) {
			return extractWithOCR(path, opts.lang())
		}})
	}
	return s
}

// ExtractPages reads a statement PDF and returns one Page per document page.
// A document that cannot be opened or decoded at all is a hard failure; a
// page without text simply yields an empty Page. Glyph recovery is
// best-effort and its faults are absorbed.
func ExtractPages(path string, opts Options) ([]Page, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open statement: %w", err)
	}

	var firstErr error
	for _, st := range strategies(opts) {
		texts, err := st.run(path)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", st.name, err)
			}
			continue
		}
		if !isReadableText(texts) {
			continue
		}

		pages := make([]Page, len(texts))
		for i, t := range texts {
			pages[i] = Page{Number: i + 1, Text: t}
		}
		attachGlyphs(path, pages)
		return pages, nil
	}

	if firstErr != nil {
		return nil, fmt.Errorf("text extraction failed: %w", firstErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from %s; the file may be scanned (try enabling OCR) or use undecodable font encodings", path)
}

// attachGlyphs recovers glyph color metadata from the document's content
// streams and assigns it to pages. The stream-to-page mapping is only
// trusted when counts line up; anything else degrades to "no color".
func attachGlyphs(path string, pages []Page) {
	defer func() {
		// Glyph recovery must never take down an extraction that already
		// produced text.
		_ = recover()
	}()

	glyphPages, err := extractGlyphs(path)
	if err != nil || len(glyphPages) == 0 {
		return
	}

	switch {
	case len(glyphPages) == len(pages):
		for i := range pages {
			pages[i].Glyphs = glyphPages[i]
		}
	case len(pages) == 1:
		var all []Glyph
		for _, g := range glyphPages {
			all = append(all, g...)
		}
		pages[0].Glyphs = all
	}
}

// JoinPages concatenates page text for whole-document scans (bank detection).
func JoinPages(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return b.String()
}
