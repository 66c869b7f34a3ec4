package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/extractor"
)

// Channel dominance thresholds below which a fill color is treated as
// too dark or too balanced to classify.
const (
	colorMin  = 0.25
	colorDiff = 0.03
)

var colorNumberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// Color is a normalized RGB fill color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// ParseColor interprets a raw fill-color operand captured from a content
// stream. Accepted forms are an RGB triple (0-1 floats or 0-255 ints), a
// single gray scalar, or free text such as "rgb(0.8, 0.1, 0.1)". Anything
// else is unresolvable.
func ParseColor(raw string) (Color, bool) {
	matches := colorNumberPattern.FindAllString(raw, -1)
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	switch {
	case len(nums) >= 3:
		c := Color{R: nums[0], G: nums[1], B: nums[2]}
		if c.R > 1 || c.G > 1 || c.B > 1 {
			c.R /= 255
			c.G /= 255
			c.B /= 255
		}
		return c, true
	case len(nums) == 1:
		v := nums[0]
		if v > 1 {
			v /= 255
		}
		return Color{R: v, G: v, B: v}, true
	}
	return Color{}, false
}

// Red reports a dominant red channel: bright enough and clearly above both
// green and blue.
func (c Color) Red() bool {
	return c.R > colorMin && c.R-c.G >= colorDiff && c.R-c.B >= colorDiff
}

// Green reports a dominant green channel.
func (c Color) Green() bool {
	return c.G > colorMin && c.G-c.R >= colorDiff && c.G-c.B >= colorDiff
}

// findColorForText locates target as a contiguous glyph run whose
// concatenated text equals the target exactly and returns the first
// resolvable fill color within that run. A candidate run is abandoned once
// it grows past the target length plus three glyphs, so one lookup never
// scans the whole page per start position.
func findColorForText(glyphs []extractor.Glyph, target string) (Color, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Color{}, false
	}
	limit := len(target) + 3
	for start := range glyphs {
		var buf strings.Builder
		for i := start; i < len(glyphs); i++ {
			buf.WriteString(glyphs[i].Text)
			if buf.String() == target {
				return firstResolvableFill(glyphs[start : i+1])
			}
			if buf.Len() > limit {
				break
			}
		}
	}
	return Color{}, false
}

func firstResolvableFill(run []extractor.Glyph) (Color, bool) {
	for _, g := range run {
		if g.Fill == "" {
			continue
		}
		if c, ok := ParseColor(g.Fill); ok {
			return c, true
		}
	}
	return Color{}, false
}
