package extractor

import (
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf16"
)

// cmap is a character-code to Unicode table built from the ToUnicode
// streams of a statement's embedded fonts. Itaú and Nubank exports embed
// subset fonts whose codes mean nothing without it.
type cmap struct {
	// entries keyed by the uppercase hex encoding of the character code
	entries map[string]string
}

var (
	bfCharBlockPattern  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeBlockPattern = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
	hexTokenPattern     = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// findCMaps collects the ToUnicode tables of every font in the document,
// merged into one lookup. Returns nil when no stream carries one.
func findCMaps(data []byte) *cmap {
	merged := &cmap{entries: make(map[string]string)}

	for _, stream := range extractStreams(data) {
		content := string(tryDecompress(stream))
		if !strings.Contains(content, "beginbfchar") && !strings.Contains(content, "beginbfrange") {
			continue
		}
		parseCMap(content, merged.entries)
	}

	if len(merged.entries) == 0 {
		return nil
	}
	return merged
}

// parseCMap reads the bfchar and bfrange sections of one ToUnicode stream
// into dst.
func parseCMap(content string, dst map[string]string) {
	// bfchar: <srcCode> <unicodeValue> pairs
	for _, block := range bfCharBlockPattern.FindAllStringSubmatch(content, -1) {
		tokens := hexTokenPattern.FindAllStringSubmatch(block[1], -1)
		for i := 0; i+1 < len(tokens); i += 2 {
			if uni := hexToUnicode(tokens[i+1][1]); uni != "" {
				dst[strings.ToUpper(tokens[i][1])] = uni
			}
		}
	}

	// bfrange: <start> <end> <dstStart>, or <start> <end> [<u1> <u2> ...]
	for _, block := range bfRangeBlockPattern.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.Contains(line, "[") {
				parseRangeArray(line, dst)
				continue
			}

			tokens := hexTokenPattern.FindAllStringSubmatch(line, -1)
			if len(tokens) < 3 {
				continue
			}
			startHex, endHex, dstHex := tokens[0][1], tokens[1][1], tokens[2][1]
			startCode, endCode, dstCode := hexToInt(startHex), hexToInt(endHex), hexToInt(dstHex)
			if startCode < 0 || endCode < 0 || dstCode < 0 {
				continue
			}

			for code := startCode; code <= endCode; code++ {
				uni := hexToUnicode(intToHex(dstCode+(code-startCode), len(dstHex)))
				if uni != "" {
					dst[intToHex(code, len(startHex))] = uni
				}
			}
		}
	}
}

// parseRangeArray handles the <start> <end> [<u1> <u2> ...] bfrange form.
func parseRangeArray(line string, dst map[string]string) {
	bracket := strings.Index(line, "[")
	if bracket < 0 {
		return
	}

	tokens := hexTokenPattern.FindAllStringSubmatch(line[:bracket], -1)
	if len(tokens) < 2 {
		return
	}
	startHex := tokens[0][1]
	startCode := hexToInt(startHex)

	for i, ut := range hexTokenPattern.FindAllStringSubmatch(line[bracket:], -1) {
		if uni := hexToUnicode(ut[1]); uni != "" {
			dst[intToHex(startCode+i, len(startHex))] = uni
		}
	}
}

// decode maps raw bytes from a PDF text string to Unicode text. Codes
// missing from the table fall back to a single-byte lookup, then to
// printable ASCII passthrough.
func (cm *cmap) decode(raw []byte) string {
	if cm == nil || len(cm.entries) == 0 {
		return ""
	}

	// Code width comes from the key length: 2 hex chars per byte.
	codeByteLen := 1
	for k := range cm.entries {
		codeByteLen = len(k) / 2
		break
	}
	if codeByteLen < 1 {
		codeByteLen = 1
	}

	var result strings.Builder
	for i := 0; i <= len(raw)-codeByteLen; i += codeByteLen {
		chunk := raw[i : i+codeByteLen]
		key := strings.ToUpper(hex.EncodeToString(chunk))
		if uni, ok := cm.entries[key]; ok {
			result.WriteString(uni)
			continue
		}
		if codeByteLen > 1 {
			key1 := strings.ToUpper(hex.EncodeToString(chunk[:1]))
			if uni1, ok := cm.entries[key1]; ok {
				result.WriteString(uni1)
				i -= codeByteLen - 1
				continue
			}
		}
		if codeByteLen == 1 && chunk[0] >= 32 && chunk[0] < 127 {
			result.WriteByte(chunk[0])
		}
	}
	return result.String()
}

func hexToInt(h string) int {
	val := 0
	for _, c := range strings.ToUpper(h) {
		val <<= 4
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'A' && c <= 'F':
			val += int(c-'A') + 10
		default:
			return -1
		}
	}
	return val
}

func intToHex(val, hexLen int) string {
	h := strings.ToUpper(hex.EncodeToString([]byte{byte(val >> 8), byte(val)}))
	if len(h) > hexLen {
		h = h[len(h)-hexLen:]
	}
	for len(h) < hexLen {
		h = "0" + h
	}
	return h
}

// hexToUnicode converts a hex-encoded UTF-16BE value to a Go string,
// including surrogate pairs.
func hexToUnicode(h string) string {
	if len(h)%2 != 0 {
		h = "0" + h
	}
	data, err := hex.DecodeString(h)
	if err != nil {
		return ""
	}

	if len(data) == 2 {
		return string(rune(uint16(data[0])<<8 | uint16(data[1])))
	}

	if len(data) == 4 {
		hi := uint16(data[0])<<8 | uint16(data[1])
		lo := uint16(data[2])<<8 | uint16(data[3])
		if hi >= 0xD800 && hi <= 0xDBFF && lo >= 0xDC00 && lo <= 0xDFFF {
			return string(utf16.DecodeRune(rune(hi), rune(lo)))
		}
		return string(rune(hi)) + string(rune(lo))
	}

	var result strings.Builder
	for i := 0; i+1 < len(data); i += 2 {
		result.WriteRune(rune(uint16(data[i])<<8 | uint16(data[i+1])))
	}
	return result.String()
}
