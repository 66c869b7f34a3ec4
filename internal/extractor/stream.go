package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// This file decodes PDF content streams directly from the raw byte stream,
// without the pdf library. It serves two purposes:
//
//  1. A text-extraction fallback for PDFs with custom font encodings
//     (CIDFont/Type0), using ToUnicode CMap tables.
//  2. Glyph recovery: the same walk tracks the non-stroking color operators
//     (rg, g, k, sc, scn) so each shown character can be paired with the
//     fill color that was active when it was drawn. Itaú statements mark
//     debits in red and credits in green, which is the only signal left
//     when a debit line lacks a textual minus sign.

// extractFromStreams is the raw text-extraction strategy.
func extractFromStreams(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	streams := extractStreams(data)
	if len(streams) == 0 {
		return nil, fmt.Errorf("no content streams found")
	}

	cm := findCMaps(data)

	var allText []string
	for _, stream := range streams {
		decompressed := tryDecompress(stream)
		text := extractTextFromStream(decompressed, cm)
		if text != "" {
			allText = append(allText, text)
		}
	}

	if len(allText) == 0 {
		return nil, fmt.Errorf("content streams carry no text operators")
	}

	return mergePageText(allText), nil
}

// extractGlyphs walks every content stream and returns one glyph sequence
// per text-bearing stream, in document order.
func extractGlyphs(filePath string) ([][]Glyph, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	streams := extractStreams(data)
	if len(streams) == 0 {
		return nil, nil
	}

	cm := findCMaps(data)

	var pages [][]Glyph
	for _, stream := range streams {
		glyphs := glyphsFromStream(tryDecompress(stream), cm)
		if len(glyphs) > 0 {
			pages = append(pages, glyphs)
		}
	}
	return pages, nil
}

// extractStreams finds all stream...endstream blocks in the PDF.
func extractStreams(data []byte) [][]byte {
	var streams [][]byte
	streamMarker := []byte("stream")
	endMarker := []byte("endstream")

	offset := 0
	for offset < len(data) {
		idx := bytes.Index(data[offset:], streamMarker)
		if idx < 0 {
			break
		}
		start := offset + idx + len(streamMarker)

		if start < len(data) && data[start] == '\r' {
			start++
		}
		if start < len(data) && data[start] == '\n' {
			start++
		}

		endIdx := bytes.Index(data[start:], endMarker)
		if endIdx < 0 {
			break
		}

		streamData := data[start : start+endIdx]
		if len(streamData) > 0 {
			streams = append(streams, streamData)
		}
		offset = start + endIdx + len(endMarker)
	}
	return streams
}

// tryDecompress attempts zlib decompression; returns original data if it fails.
func tryDecompress(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

// Patterns for PDF text and color operators.
var (
	hexTjPattern      = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*Tj`)
	litTjPattern      = regexp.MustCompile(`\(([^)]*)\)\s*Tj`)
	tjArrayPattern    = regexp.MustCompile(`\[([^\]]*)\]\s*TJ`)
	hexInArrayPattern = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
	litInArrayPattern = regexp.MustCompile(`\(([^)]*)\)`)
	tickPattern       = regexp.MustCompile(`\(([^)]*)\)\s*'`)
	tdPattern         = regexp.MustCompile(`([\d.\-]+)\s+([\d.\-]+)\s+T[dD]`)

	// Non-stroking color: "r g b rg" (also sc/scn with three operands),
	// "gray g" and "c m y k k".
	rgbFillPattern  = regexp.MustCompile(`(\d*\.?\d+)\s+(\d*\.?\d+)\s+(\d*\.?\d+)\s+(?:rg|sc|scn)\b`)
	grayFillPattern = regexp.MustCompile(`(\d*\.?\d+)\s+g\b`)
	cmykFillPattern = regexp.MustCompile(`(\d*\.?\d+)\s+(\d*\.?\d+)\s+(\d*\.?\d+)\s+(\d*\.?\d+)\s+k\b`)
)

// extractTextFromStream parses a PDF content stream and extracts text.
func extractTextFromStream(data []byte, cm *cmap) string {
	content := string(data)

	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") &&
		!strings.Contains(content, "BT") {
		return ""
	}

	var lines []string
	for _, block := range splitBTBlocks(content) {
		lines = append(lines, processTextBlock(block, cm)...)
	}

	if len(lines) == 0 {
		text := extractAllText(content, cm)
		if text != "" {
			lines = append(lines, text)
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// splitBTBlocks extracts content between BT and ET operators.
func splitBTBlocks(content string) []string {
	var blocks []string
	remaining := content
	for {
		btIdx := strings.Index(remaining, "BT")
		if btIdx < 0 {
			break
		}
		etIdx := strings.Index(remaining[btIdx:], "ET")
		if etIdx < 0 {
			break
		}
		blocks = append(blocks, remaining[btIdx:btIdx+etIdx+2])
		remaining = remaining[btIdx+etIdx+2:]
	}
	return blocks
}

// processTextBlock extracts lines of text from a BT...ET block, using the
// positioning operators (Td/TD/T*) as line breaks.
func processTextBlock(block string, cm *cmap) []string {
	var lines []string
	var currentLine strings.Builder

	flush := func() {
		if currentLine.Len() > 0 {
			if line := strings.TrimSpace(currentLine.String()); line != "" {
				lines = append(lines, line)
			}
			currentLine.Reset()
		}
	}

	for _, op := range strings.Split(block, "\n") {
		op = strings.TrimSpace(op)

		if tdPattern.MatchString(op) || op == "T*" {
			flush()
		}

		for _, m := range hexTjPattern.FindAllStringSubmatch(op, -1) {
			currentLine.WriteString(decodeHexString(m[1], cm))
		}
		for _, m := range litTjPattern.FindAllStringSubmatch(op, -1) {
			currentLine.WriteString(decodeLiteralString(m[1], cm))
		}
		for _, m := range tjArrayPattern.FindAllStringSubmatch(op, -1) {
			currentLine.WriteString(decodeTJArray(m[1], cm))
		}
		for _, m := range tickPattern.FindAllStringSubmatch(op, -1) {
			flush()
			currentLine.WriteString(decodeLiteralString(m[1], cm))
		}
	}

	flush()
	return lines
}

// glyphsFromStream walks a content stream in operator order, tracking the
// current non-stroking color and pairing it with every shown character.
func glyphsFromStream(data []byte, cm *cmap) []Glyph {
	content := string(data)
	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") {
		return nil
	}

	type event struct {
		pos  int
		kind int // 0 rgb fill, 1 gray fill, 2 cmyk fill, 3 text
		text string
		fill string
	}
	var events []event

	for _, idx := range rgbFillPattern.FindAllStringSubmatchIndex(content, -1) {
		events = append(events, event{pos: idx[0], kind: 0,
			fill: content[idx[2]:idx[3]] + " " + content[idx[4]:idx[5]] + " " + content[idx[6]:idx[7]]})
	}
	for _, idx := range grayFillPattern.FindAllStringSubmatchIndex(content, -1) {
		events = append(events, event{pos: idx[0], kind: 1, fill: content[idx[2]:idx[3]]})
	}
	for _, idx := range cmykFillPattern.FindAllStringSubmatchIndex(content, -1) {
		c := parseFloatOr(content[idx[2]:idx[3]], 0)
		m := parseFloatOr(content[idx[4]:idx[5]], 0)
		y := parseFloatOr(content[idx[6]:idx[7]], 0)
		k := parseFloatOr(content[idx[8]:idx[9]], 0)
		r := (1 - c) * (1 - k)
		g := (1 - m) * (1 - k)
		b := (1 - y) * (1 - k)
		events = append(events, event{pos: idx[0], kind: 2,
			fill: fmt.Sprintf("%.3f %.3f %.3f", r, g, b)})
	}

	addText := func(pos int, text string) {
		if text != "" {
			events = append(events, event{pos: pos, kind: 3, text: text})
		}
	}
	for _, idx := range hexTjPattern.FindAllStringSubmatchIndex(content, -1) {
		addText(idx[0], decodeHexString(content[idx[2]:idx[3]], cm))
	}
	for _, idx := range litTjPattern.FindAllStringSubmatchIndex(content, -1) {
		addText(idx[0], decodeLiteralString(content[idx[2]:idx[3]], cm))
	}
	for _, idx := range tjArrayPattern.FindAllStringSubmatchIndex(content, -1) {
		addText(idx[0], decodeTJArray(content[idx[2]:idx[3]], cm))
	}

	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	var glyphs []Glyph
	currentFill := ""
	for _, ev := range events {
		if ev.kind != 3 {
			currentFill = ev.fill
			continue
		}
		for _, r := range ev.text {
			glyphs = append(glyphs, Glyph{Text: string(r), Fill: currentFill})
		}
	}
	return glyphs
}

func parseFloatOr(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// extractAllText extracts all text from content without BT/ET block structure.
func extractAllText(content string, cm *cmap) string {
	var parts []string

	for _, m := range hexTjPattern.FindAllStringSubmatch(content, -1) {
		if text := decodeHexString(m[1], cm); text != "" {
			parts = append(parts, text)
		}
	}
	for _, m := range litTjPattern.FindAllStringSubmatch(content, -1) {
		if text := decodeLiteralString(m[1], cm); text != "" {
			parts = append(parts, text)
		}
	}
	for _, m := range tjArrayPattern.FindAllStringSubmatch(content, -1) {
		if text := decodeTJArray(m[1], cm); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}

// decodeHexString decodes a hex-encoded PDF string using CMap if available.
func decodeHexString(hexStr string, cm *cmap) string {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return ""
	}

	if cm != nil {
		if result := cm.decode(raw); result != "" {
			return result
		}
	}

	// Fallback: try as direct UTF-16BE
	if len(raw)%2 == 0 && len(raw) >= 2 {
		var result strings.Builder
		for i := 0; i+1 < len(raw); i += 2 {
			cp := rune(raw[i])<<8 | rune(raw[i+1])
			if unicode.IsPrint(cp) || cp == ' ' {
				result.WriteRune(cp)
			}
		}
		if result.Len() > 0 {
			return result.String()
		}
	}

	return cleanString(string(raw))
}

// decodeLiteralString decodes a literal PDF string using CMap if available.
func decodeLiteralString(s string, cm *cmap) string {
	decoded := decodePDFEscapes(s)

	if cm != nil {
		if result := cm.decode([]byte(decoded)); result != "" && isPrintable(result) {
			return result
		}
	}

	return cleanString(decoded)
}

// decodeTJArray decodes a TJ array, which contains a mix of strings and numbers.
func decodeTJArray(arrayContent string, cm *cmap) string {
	type match struct {
		pos   int
		isHex bool
		body  string
	}
	var all []match

	for _, idx := range hexInArrayPattern.FindAllStringSubmatchIndex(arrayContent, -1) {
		all = append(all, match{pos: idx[0], isHex: true, body: arrayContent[idx[2]:idx[3]]})
	}
	for _, idx := range litInArrayPattern.FindAllStringSubmatchIndex(arrayContent, -1) {
		all = append(all, match{pos: idx[0], body: arrayContent[idx[2]:idx[3]]})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].pos < all[j].pos })

	var parts []string
	for _, m := range all {
		var text string
		if m.isHex {
			text = decodeHexString(m.body, cm)
		} else {
			text = decodeLiteralString(m.body, cm)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "")
}

// decodePDFEscapes handles basic PDF string escape sequences.
func decodePDFEscapes(s string) string {
	var buf strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(':
				buf.WriteByte('(')
			case ')':
				buf.WriteByte(')')
			case '\\':
				buf.WriteByte('\\')
			default:
				if s[i] >= '0' && s[i] <= '7' {
					val := int(s[i] - '0')
					for j := 1; j < 3 && i+j < len(s) && s[i+j] >= '0' && s[i+j] <= '7'; j++ {
						val = val*8 + int(s[i+j]-'0')
						i++
					}
					if val >= 0 && val < 256 {
						buf.WriteByte(byte(val))
					}
				} else {
					buf.WriteByte(s[i])
				}
			}
		} else {
			buf.WriteByte(s[i])
		}
		i++
	}
	return buf.String()
}

// cleanString removes non-printable characters.
func cleanString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		return -1
	}, s))
}

// isPrintable checks if a string contains mostly printable characters.
func isPrintable(s string) bool {
	if len(s) == 0 {
		return false
	}
	printable := 0
	for _, r := range s {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' || r == ' ' {
			printable++
		}
	}
	return float64(printable)/float64(len([]rune(s))) > 0.5
}

// mergePageText groups extracted text into logical pages.
func mergePageText(texts []string) []string {
	var current strings.Builder

	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(t)
	}

	if current.Len() == 0 {
		return nil
	}
	return []string{current.String()}
}
