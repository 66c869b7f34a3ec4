package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/corregab/leitor-de-extrato/internal/models"
)

// WriteAmounts prints one amount per line, for pasting into a spreadsheet.
// With decimalComma the decimal separator is a comma instead of a point.
func WriteAmounts(out io.Writer, txns []models.Transaction, decimalComma bool) {
	for _, txn := range txns {
		v := txn.Amount.String()
		if decimalComma {
			v = txn.Amount.Comma()
		}
		fmt.Fprintln(out, v)
	}
}

// WriteAmountsToFile writes the amounts listing to a file at the given path.
func WriteAmountsToFile(path string, txns []models.Transaction, decimalComma bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	WriteAmounts(f, txns, decimalComma)
	return nil
}
