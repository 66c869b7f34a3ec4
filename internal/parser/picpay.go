package parser

import (
	"regexp"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

var picpayAmountPattern = regexp.MustCompile(`R\$\s*(\d{1,3}(?:\.\d{3})*,\d{2})`)

type picpayRules struct{}

func (picpayRules) Bank() models.BankType { return models.BankPicPay }
func (picpayRules) BankName() string      { return "PicPay" }

// PicPay statements only ever credit via Pix, so the classifier is a single
// phrase match. A minus directly before the currency marker means the line
// is a reversal or an outgoing entry misworded as received.
func (picpayRules) Classify(line string) bool {
	upper := strings.ToUpper(line)
	if !strings.Contains(upper, "PIX RECEBIDO") {
		return false
	}
	if strings.Contains(upper, "ENVIADO") {
		return false
	}
	return !minusBeforeCurrency(line)
}

func (picpayRules) Extract(line string) (Fields, bool) {
	date := "-"
	if m := fullSlashDatePattern.FindString(line); m != "" {
		date = m
	}

	amtText, ok := picpayAmount(line)
	if !ok {
		return Fields{}, false
	}
	amount, err := money.ParseBR(amtText)
	if err != nil {
		return Fields{}, false
	}

	return Fields{
		Date:        date,
		Description: "Pix Recebido",
		Amount:      amount,
		Type:        "PIX",
		amountText:  amtText,
	}, true
}

// picpayAmount finds the first "R$ 1.234,56" occurrence not preceded by a
// minus sign.
func picpayAmount(line string) (string, bool) {
	for _, m := range picpayAmountPattern.FindAllStringSubmatchIndex(line, -1) {
		if precededByMinus(line[:m[0]]) {
			continue
		}
		return line[m[2]:m[3]], true
	}
	return "", false
}

func minusBeforeCurrency(line string) bool {
	search := line
	for {
		j := strings.Index(search, "R$")
		if j < 0 {
			return false
		}
		if precededByMinus(search[:j]) {
			return true
		}
		search = search[j+2:]
	}
}
