package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name:  "empty",
			pages: nil,
			want:  false,
		},
		{
			name:  "too short",
			pages: []string{"extrato"},
			want:  false,
		},
		{
			name: "readable statement text",
			pages: []string{
				"Extrato de conta corrente\n10/01/2025 PIX RECEBIDO JOAO DA SILVA 1.500,00\nSaldo do dia 2.300,00",
			},
			want: true,
		},
		{
			name: "readable but not a statement",
			pages: []string{
				"The quick brown fox jumps over the lazy dog again and again and again and again",
			},
			want: false,
		},
		{
			name: "mostly font garbage",
			pages: []string{
				"extrato \x01\x02\x03\x04\x05\x06\x07\x08\x0e\x0f\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1a\x1b\x1c\x1d\x1e\x1f\x01\x02\x03\x04\x05\x06\x07\x08\x0e\x0f\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1a\x1b\x1c\x1d\x1e\x1f\x01\x02\x03\x04",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.want {
				t.Errorf("isReadableText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractStreams(t *testing.T) {
	data := []byte("header stream\nfirst block endstream middle stream\nsecond endstream tail")

	streams := extractStreams(data)
	if len(streams) != 2 {
		t.Fatalf("extractStreams() found %d streams, want 2", len(streams))
	}
	if string(streams[0]) != "first block " {
		t.Errorf("first stream = %q", string(streams[0]))
	}
	if string(streams[1]) != "second " {
		t.Errorf("second stream = %q", string(streams[1]))
	}
}

func TestFindCMapsAbsent(t *testing.T) {
	data := []byte("stream\nBT (hello) Tj ET\nendstream")
	if cm := findCMaps(data); cm != nil {
		t.Errorf("findCMaps() = %v, want nil for a document without ToUnicode tables", cm)
	}
}

func TestCMapDecode(t *testing.T) {
	data := []byte("stream\n" +
		"beginbfchar\n" +
		"<0041> <0041>\n" +
		"<0042> <00E9>\n" +
		"endbfchar\n" +
		"beginbfrange\n" +
		"<0050> <0052> <0061>\n" +
		"endbfrange\n" +
		"endstream")

	cm := findCMaps(data)
	if cm == nil {
		t.Fatal("findCMaps() returned nil for a document with a ToUnicode table")
	}

	if got := cm.decode([]byte{0x00, 0x41, 0x00, 0x42}); got != "Aé" {
		t.Errorf("decode(bfchar codes) = %q, want %q", got, "Aé")
	}
	if got := cm.decode([]byte{0x00, 0x50, 0x00, 0x51, 0x00, 0x52}); got != "abc" {
		t.Errorf("decode(bfrange codes) = %q, want %q", got, "abc")
	}
}

func TestCMapDecodeRangeArrayForm(t *testing.T) {
	data := []byte("stream\n" +
		"beginbfrange\n" +
		"<0010> <0012> [<0058> <0059> <005A>]\n" +
		"endbfrange\n" +
		"endstream")

	cm := findCMaps(data)
	if cm == nil {
		t.Fatal("findCMaps() returned nil")
	}
	if got := cm.decode([]byte{0x00, 0x10, 0x00, 0x11, 0x00, 0x12}); got != "XYZ" {
		t.Errorf("decode(array-form range) = %q, want %q", got, "XYZ")
	}
}

func TestCMapDecodeNil(t *testing.T) {
	var cm *cmap
	if got := cm.decode([]byte("anything")); got != "" {
		t.Errorf("nil cmap decode = %q, want empty", got)
	}
}

func TestDecodePDFEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`line\nbreak`, "line\nbreak"},
		{`par\(en\)s`, "par(en)s"},
		{`back\\slash`, "back\\slash"},
		{`octal \101\102`, "octal AB"},
	}

	for _, tt := range tests {
		if got := decodePDFEscapes(tt.in); got != tt.want {
			t.Errorf("decodePDFEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeTJArray(t *testing.T) {
	// Kerning numbers between the string segments must be dropped.
	got := decodeTJArray(`(PIX ) -12 (RECE) 3 (BIDO)`, nil)
	if got != "PIX RECEBIDO" {
		t.Errorf("decodeTJArray() = %q, want %q", got, "PIX RECEBIDO")
	}
}

func TestGlyphsFromStream(t *testing.T) {
	stream := []byte("BT\n" +
		"0 0 0 rg\n" +
		"(Saldo) Tj\n" +
		"0.9 0.1 0.1 rg\n" +
		"(-100,00) Tj\n" +
		"ET\n")

	glyphs := glyphsFromStream(stream, nil)
	if len(glyphs) != len("Saldo")+len("-100,00") {
		t.Fatalf("got %d glyphs, want %d", len(glyphs), len("Saldo")+len("-100,00"))
	}

	if glyphs[0].Text != "S" || glyphs[0].Fill != "0 0 0" {
		t.Errorf("first glyph = %+v, want S with black fill", glyphs[0])
	}
	for _, g := range glyphs[len("Saldo"):] {
		if g.Fill != "0.9 0.1 0.1" {
			t.Errorf("glyph %q fill = %q, want %q", g.Text, g.Fill, "0.9 0.1 0.1")
		}
	}
}

func TestGlyphsFromStreamCMYKAndGray(t *testing.T) {
	stream := []byte("BT\n" +
		"0 1 1 0 k\n" +
		"(deb) Tj\n" +
		"0.5 g\n" +
		"(txt) Tj\n" +
		"ET\n")

	glyphs := glyphsFromStream(stream, nil)
	if len(glyphs) != 6 {
		t.Fatalf("got %d glyphs, want 6", len(glyphs))
	}
	if glyphs[0].Fill != "1.000 0.000 0.000" {
		t.Errorf("CMYK red converted to %q, want %q", glyphs[0].Fill, "1.000 0.000 0.000")
	}
	if glyphs[5].Fill != "0.5" {
		t.Errorf("gray fill = %q, want %q", glyphs[5].Fill, "0.5")
	}
}

func TestGlyphsFromStreamNoText(t *testing.T) {
	if glyphs := glyphsFromStream([]byte("0 0 1 rg 10 10 m 50 50 l S"), nil); glyphs != nil {
		t.Errorf("got %d glyphs from a stream without text operators, want none", len(glyphs))
	}
}

func TestMergePageText(t *testing.T) {
	got := mergePageText([]string{"primeira parte", "", "  segunda parte  "})
	if len(got) != 1 {
		t.Fatalf("mergePageText() returned %d pages, want 1", len(got))
	}
	if got[0] != "primeira parte\nsegunda parte" {
		t.Errorf("merged text = %q", got[0])
	}

	if got := mergePageText([]string{"", "   "}); got != nil {
		t.Errorf("mergePageText(blank) = %v, want nil", got)
	}
}

func TestExtractPagesMissingFile(t *testing.T) {
	_, err := ExtractPages("/nonexistent/extrato.pdf", Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "cannot open statement") {
		t.Errorf("error = %v, want a cannot-open error", err)
	}
}

func TestExtractPagesFromRawStreams(t *testing.T) {
	// A minimal document that the pdf library cannot parse but the raw
	// content-stream walk can: one uncompressed stream with text operators.
	doc := "%PDF-1.4\n" +
		"stream\n" +
		"BT\n" +
		"0 0 0 rg\n" +
		"(Extrato de conta corrente - lancamentos do periodo) Tj\n" +
		"0 -12 Td\n" +
		"(10/01/2025 PIX RECEBIDO JOAO DA SILVA 1.500,00) Tj\n" +
		"ET\n" +
		"endstream\n"

	path := filepath.Join(t.TempDir(), "sintetico.pdf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := ExtractPages(path, Options{})
	if err != nil {
		t.Fatalf("ExtractPages() error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if pages[0].Number != 1 {
		t.Errorf("page number = %d, want 1", pages[0].Number)
	}
	if !strings.Contains(pages[0].Text, "PIX RECEBIDO JOAO DA SILVA") {
		t.Errorf("page text missing transaction line: %q", pages[0].Text)
	}
	if len(pages[0].Glyphs) == 0 {
		t.Error("expected glyph metadata to be attached")
	}

	joined := JoinPages(pages)
	if !strings.Contains(joined, "Extrato de conta corrente") {
		t.Errorf("JoinPages() missing header: %q", joined)
	}
}

func TestAttachGlyphsCountMismatch(t *testing.T) {
	// Two text pages but glyph recovery is per-stream; a mismatch other
	// than the single-page case must leave pages untouched.
	pages := []Page{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}}

	path := filepath.Join(t.TempDir(), "one-stream.pdf")
	doc := "stream\nBT (so um fluxo) Tj ET\nendstream"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	attachGlyphs(path, pages)
	if pages[0].Glyphs != nil || pages[1].Glyphs != nil {
		t.Error("glyphs attached despite stream/page count mismatch")
	}
}
