package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

// Santander statements mix credits and debits in the same column, so the
// classifier is keyword driven and exclusions always win over inclusions.
var (
	santanderExclusions = []string{
		"SAQUE", "PAGAMENTO", "COMPRA", "TARIFA", "TAXA",
		"DEBITO", "DÉBITO", "PAGTO", "ESTORNO", "ENVIADO", "LIMITE",
	}
	santanderInclusions = []string{
		"RECEBIDO", "RECEBIMENTO", "DEP", "DEPÓSITO", "DEPOSITO",
		"CRÉDITO", "CRED", "CREDITO",
	}
	santanderPhrases = []string{
		"TRANSFERÊNCIA RECEBIDA", "TRANSFERENCIA RECEBIDA",
		"TED RECEBIDO", "DOC RECEBIDO",
	}

	santanderDatePattern = regexp.MustCompile(`\b(\d{2}/\d{2}/(?:\d{2,4}))\b`)
	longDigitRunPattern  = regexp.MustCompile(`\b\d{5,}\b`)
	documentLabelPattern = regexp.MustCompile(`(?i)N\s*[°º]\s*DOCUMENTO`)
)

type santanderRules struct{}

func (santanderRules) Bank() models.BankType { return models.BankSantander }
func (santanderRules) BankName() string      { return "Santander" }

func (santanderRules) Classify(line string) bool {
	upper := strings.ToUpper(line)
	if containsAny(upper, santanderExclusions) {
		return false
	}
	return containsAny(upper, santanderInclusions) || containsAny(upper, santanderPhrases)
}

func (santanderRules) Extract(line string) (Fields, bool) {
	amounts := brAmountPattern.FindAllString(line, -1)
	if len(amounts) == 0 {
		return Fields{}, false
	}

	// Lines with two or more amounts carry a trailing running balance;
	// the transaction amount is the second-to-last token.
	amtText := amounts[0]
	if len(amounts) >= 2 {
		amtText = amounts[len(amounts)-2]
	}
	if minusPrecedes(line, amtText) {
		return Fields{}, false
	}

	clean := strings.NewReplacer(".", "", ",", ".").Replace(amtText)
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return Fields{}, false
	}
	amount := money.FromFloat(value)

	var date string
	if m := santanderDatePattern.FindStringSubmatch(line); m != nil {
		date = m[1]
	}

	desc := brAmountPattern.ReplaceAllString(line, "")
	desc = santanderDatePattern.ReplaceAllString(desc, "")
	desc = longDigitRunPattern.ReplaceAllString(desc, "")
	desc = documentLabelPattern.ReplaceAllString(desc, "")
	desc = strings.Trim(collapseSpaces(desc), " -–—:;,.")

	return Fields{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Type:        "CRÉDITO",
		amountText:  amtText,
	}, true
}
