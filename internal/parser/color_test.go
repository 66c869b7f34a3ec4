package parser

import (
	"testing"

	"github.com/corregab/leitor-de-extrato/internal/extractor"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Color
		ok   bool
	}{
		{"floats", "0.8 0.1 0.1 rg", Color{0.8, 0.1, 0.1}, true},
		{"ints 0-255", "204 26 26", Color{204.0 / 255, 26.0 / 255, 26.0 / 255}, true},
		{"gray scalar", "0.5 g", Color{0.5, 0.5, 0.5}, true},
		{"gray 0-255", "128", Color{128.0 / 255, 128.0 / 255, 128.0 / 255}, true},
		{"rgb text", "rgb(0.8, 0.1, 0.1)", Color{0.8, 0.1, 0.1}, true},
		{"empty", "", Color{}, false},
		{"no numbers", "DeviceRGB", Color{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseColor(tc.raw)
		if ok != tc.ok {
			t.Errorf("%s: ok=%v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestColorRedGreen(t *testing.T) {
	red := Color{0.8, 0.1, 0.1}
	if !red.Red() || red.Green() {
		t.Errorf("%+v should be red only", red)
	}

	green := Color{0.1, 0.7, 0.1}
	if !green.Green() || green.Red() {
		t.Errorf("%+v should be green only", green)
	}

	// Too dark to call.
	dark := Color{0.2, 0.05, 0.05}
	if dark.Red() {
		t.Errorf("%+v below minimum should not be red", dark)
	}

	// Channels too close to call.
	gray := Color{0.5, 0.49, 0.5}
	if gray.Red() || gray.Green() {
		t.Errorf("%+v should be neither", gray)
	}
}

func TestFindColorForText(t *testing.T) {
	glyphs := glyphRun("saldo do dia ", "0 0 0 rg")
	glyphs = append(glyphs, glyphRun("320,00", "0.8 0.1 0.1 rg")...)

	c, ok := findColorForText(glyphs, "320,00")
	if !ok {
		t.Fatal("expected a color for the amount run")
	}
	if !c.Red() {
		t.Errorf("got %+v, want red", c)
	}

	if _, ok := findColorForText(glyphs, "999,99"); ok {
		t.Error("expected no color for absent text")
	}
	if _, ok := findColorForText(glyphs, ""); ok {
		t.Error("expected no color for empty target")
	}
	if _, ok := findColorForText(nil, "320,00"); ok {
		t.Error("expected no color with no glyphs")
	}
}

func TestFindColorForTextUnresolvableFill(t *testing.T) {
	glyphs := []extractor.Glyph{
		{Text: "3", Fill: ""},
		{Text: "2", Fill: ""},
		{Text: "0", Fill: "DeviceGray"},
	}
	if _, ok := findColorForText(glyphs, "320"); ok {
		t.Error("expected no color when no glyph fill resolves")
	}
}
