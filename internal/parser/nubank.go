package parser

import (
	"regexp"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

// Nubank statements group credits under a dated "Total de entradas" header,
// so eligibility is section-based: a trailing amount only counts while the
// scan sits inside an open incoming section with a resolved date.
var (
	nubankHeaderDatePattern = regexp.MustCompile(`(?i)^(\d{1,2}\s+(?:JAN|FEV|MAR|ABR|MAI|JUN|JUL|AGO|SET|OUT|NOV|DEZ)\s+\d{4})`)
	nubankTrailingAmount    = regexp.MustCompile(`\s+([\d.]+,\d{2})\s*$`)
)

// nubankState is the section scanner's position within a page.
type nubankState int

const (
	outsideSection nubankState = iota
	insideCreditSection
)

type nubankRules struct{}

func (nubankRules) Bank() models.BankType { return models.BankNubank }
func (nubankRules) BankName() string      { return "Nubank" }

// scanPage walks one page's lines with a fresh section state. The header
// date, when present, dates every transaction in the section; a header
// without a date opens the section but no line is accepted until the date
// resolves, which in practice means the section yields nothing.
func (nubankRules) scanPage(lines []string) []sectionHit {
	var hits []sectionHit
	state := outsideSection
	var currentDate string

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.Contains(line, "Total de entradas") {
			state = insideCreditSection
			if m := nubankHeaderDatePattern.FindStringSubmatch(line); m != nil {
				currentDate = strings.TrimSpace(m[1])
			}
			continue
		}
		if strings.Contains(line, "Total de sa") || strings.Contains(line, "Total de débitos") {
			state = outsideSection
			currentDate = ""
			continue
		}
		if state != insideCreditSection || currentDate == "" {
			continue
		}

		m := nubankTrailingAmount.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		amtText := line[m[2]:m[3]]
		desc := strings.TrimSpace(line[:m[0]])

		if desc == "" || strings.HasPrefix(desc, "(") || strings.HasPrefix(desc, "Ag") {
			continue
		}
		if len([]rune(desc)) < 5 {
			continue
		}
		if strings.Contains(strings.ToLower(desc), "resgate rdb") {
			continue
		}
		if minusPrecedes(line, amtText) {
			continue
		}

		amount, err := money.ParseBR(amtText)
		if err != nil {
			continue
		}

		hits = append(hits, sectionHit{
			line: line,
			fields: Fields{
				Date:        currentDate,
				Description: desc,
				Amount:      amount,
				Type:        "CRÉDITO",
				amountText:  amtText,
			},
		})
	}

	return hits
}
