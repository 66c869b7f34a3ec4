package parser

import (
	"regexp"
	"strings"
)

// Date and amount patterns shared by the bank rules. Statements use
// Brazilian formats throughout: DD/MM/YYYY or DD/MM/YY dates (Mercado Pago
// uses dashes) and "1.234,56" amounts.
var (
	slashDatePattern     = regexp.MustCompile(`(\d{2}/\d{2}/(?:\d{4}|\d{2}))`)
	fullSlashDatePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	dashDatePattern      = regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`)
	brAmountPattern      = regexp.MustCompile(`(\d{1,3}(?:\.\d{3})*,\d{2})`)
	spaceRunPattern      = regexp.MustCompile(`\s+`)
)

// collapseSpaces reduces whitespace runs to single spaces and trims the ends.
func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunPattern.ReplaceAllString(s, " "))
}

// expandTwoDigitYear normalizes a DD/MM/YY date to DD/MM/20YY. Dates that
// already carry four digits are returned unchanged.
func expandTwoDigitYear(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) == 3 && len(parts[2]) == 2 {
		return parts[0] + "/" + parts[1] + "/20" + parts[2]
	}
	return date
}

// minusPrecedes reports whether a minus sign (ASCII '-' or U+2212) appears
// immediately before any occurrence of token in line, allowing whitespace in
// between. Amount patterns never capture the sign, so this is how a debit
// that slipped past keyword classification is caught.
func minusPrecedes(line, token string) bool {
	if token == "" {
		return false
	}
	search := line
	for {
		j := strings.Index(search, token)
		if j < 0 {
			return false
		}
		if precededByMinus(search[:j]) {
			return true
		}
		search = search[j+len(token):]
	}
}

func precededByMinus(prefix string) bool {
	trimmed := strings.TrimRight(prefix, " \t")
	return strings.HasSuffix(trimmed, "-") || strings.HasSuffix(trimmed, "−")
}

// containsAny reports whether the (already uppercased) line contains any of
// the given keywords.
func containsAny(upper string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
