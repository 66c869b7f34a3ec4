package parser

import (
	"regexp"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

var (
	mercadoPagoSummary = []string{
		"ENTRADAS:", "SAIDAS:", "SALDO INICIAL", "SALDO FINAL", "TOTAL",
	}
	mercadoPagoDebits = []string{
		"PIX ENVIADA", "ENVIADO", "ENVIADA", "PAGAMENTO",
		"COMPRA", "SAQUE", "TARIFA", "TAXA",
	}
	mercadoPagoCredits = []string{
		"RENDIMENTOS", "RENDIMENTO", "PIX RECEBIDO", "RECEBIDO",
		"TRANSFERÊNCIA RECEBIDA", "TRANSFERENCIA RECEBIDA",
		"DEPOSITO", "DEPÓSITO",
	}

	mercadoPagoAmountPattern = regexp.MustCompile(`R\$\s*(-?\d{1,3}(?:\.\d{3})*,\d{2})`)
	longIDPattern            = regexp.MustCompile(`\d{10,}`)
)

type mercadoPagoRules struct{}

func (mercadoPagoRules) Bank() models.BankType { return models.BankMercadoPago }
func (mercadoPagoRules) BankName() string      { return "Mercado Pago" }

// Summary and total rows repeat the credit keywords, so they are rejected
// before debits and debits before credits.
func (mercadoPagoRules) Classify(line string) bool {
	upper := strings.ToUpper(line)
	if containsAny(upper, mercadoPagoSummary) {
		return false
	}
	if containsAny(upper, mercadoPagoDebits) {
		return false
	}
	return containsAny(upper, mercadoPagoCredits)
}

func (mercadoPagoRules) Extract(line string) (Fields, bool) {
	date := dashDatePattern.FindString(line)
	if date == "" {
		return Fields{}, false
	}

	m := mercadoPagoAmountPattern.FindStringSubmatch(line)
	if m == nil {
		return Fields{}, false
	}
	amtText := m[1]
	amount, err := money.ParseBR(amtText)
	if err != nil {
		return Fields{}, false
	}
	// The sign lives inside the captured token here; the shared positivity
	// check in the driver rejects anything that parsed negative or zero.

	upper := strings.ToUpper(line)
	var txType string
	switch {
	case strings.Contains(upper, "RENDIMENTO"):
		txType = "RENDIMENTO"
	case strings.Contains(upper, "PIX") && strings.Contains(upper, "RECEBID"):
		txType = "PIX RECEBIDO"
	case strings.Contains(upper, "TRANSFER") && strings.Contains(upper, "RECEBID"):
		txType = "TRANSFERÊNCIA"
	default:
		txType = "CRÉDITO"
	}

	desc := mercadoPagoAmountPattern.ReplaceAllString(line, "")
	desc = dashDatePattern.ReplaceAllString(desc, "")
	desc = longIDPattern.ReplaceAllString(desc, "")
	desc = collapseSpaces(desc)
	if desc == "" {
		desc = txType
	}

	return Fields{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Type:        txType,
		amountText:  amtText,
	}, true
}
