package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

const tableWidth = 80

// WriteTable prints transactions as a readable console table with the
// provider label and a running total in Brazilian currency formatting.
func WriteTable(out io.Writer, bankName string, txns []models.Transaction) {
	rule := strings.Repeat("=", tableWidth)

	fmt.Fprintf(out, "\n%s\n", rule)
	fmt.Fprintf(out, "EXTRATO %s - CRÉDITOS\n", strings.ToUpper(bankName))
	fmt.Fprintf(out, "%s\n\n", rule)

	if len(txns) == 0 {
		fmt.Fprintln(out, "Nenhum crédito encontrado.")
		fmt.Fprintf(out, "%s\n", rule)
		return
	}

	total := money.Zero()
	for _, txn := range txns {
		date := txn.Date
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(out, "%-12s | %-40s | R$ %12s\n", date, truncateCell(txn.Description, 40), txn.Amount.Comma())
		total = total.Add(txn.Amount)
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("-", tableWidth))
	fmt.Fprintf(out, "%-55s | %s\n", "TOTAL", total.FormatBR())
	fmt.Fprintf(out, "%s\n", rule)
}

func truncateCell(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
