package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/corregab/leitor-de-extrato/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct{}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Data", "Descrição", "Valor", "Tipo", "Linha Original", "Página"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Amount.String(),
			txn.Type,
			txn.RawLine,
			strconv.Itoa(txn.Page),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
