package parser

import (
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/extractor"
	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

// itauCreditMarkers maps statement keywords to transaction types. Order
// matters: the first marker found in a line decides the type.
var itauCreditMarkers = []struct {
	keyword string
	txType  string
}{
	{"PIX QRS", "PIX"},
	{"PIX TRANSF", "PIX"},
	{"PIX RECEBIDO", "PIX"},
	{"TED RECEBIDA", "TED"},
	{"DOC RECEBIDO", "DOC"},
	{"DEPOSITO", "DEPÓSITO"},
}

type itauRules struct{}

func (itauRules) Bank() models.BankType { return models.BankItau }
func (itauRules) BankName() string      { return "Itaú" }

func (itauRules) Classify(line string) bool {
	norm := strings.ToUpper(collapseSpaces(line))
	if strings.HasPrefix(norm, "-") || strings.Contains(norm, "-R$") {
		return false
	}
	for _, m := range itauCreditMarkers {
		if strings.Contains(norm, m.keyword) {
			return true
		}
	}
	return false
}

func (itauRules) Extract(line string) (Fields, bool) {
	dateMatch := slashDatePattern.FindString(line)
	if dateMatch == "" {
		return Fields{}, false
	}
	date := expandTwoDigitYear(dateMatch)

	amountMatch := brAmountPattern.FindString(line)
	if amountMatch == "" {
		return Fields{}, false
	}
	if minusPrecedes(line, amountMatch) {
		return Fields{}, false
	}
	amount, err := money.ParseBR(amountMatch)
	if err != nil {
		return Fields{}, false
	}

	// A credit line always carries a marker, but the tag derivation stays
	// independent of Classify so an unrecognized keyword degrades to OUTROS
	// instead of panicking downstream.
	txType := "OUTROS"
	norm := strings.ToUpper(collapseSpaces(line))
	for _, m := range itauCreditMarkers {
		if strings.Contains(norm, m.keyword) {
			txType = m.txType
			break
		}
	}

	desc := brAmountPattern.ReplaceAllString(line, "")
	desc = slashDatePattern.ReplaceAllString(desc, "")

	return Fields{
		Date:        date,
		Description: collapseSpaces(desc),
		Amount:      amount,
		Type:        txType,
		amountText:  amountMatch,
	}, true
}

// vetoByColor drops a line whose amount is rendered in red, but only when
// keyword classification could not settle the type. A recognized marker
// always wins over the glyph color; an unresolvable color counts as accept.
func (itauRules) vetoByColor(f Fields, glyphs []extractor.Glyph) bool {
	if f.Type != "OUTROS" {
		return false
	}
	c, ok := findColorForText(glyphs, f.amountText)
	if !ok {
		return false
	}
	return c.Red()
}
