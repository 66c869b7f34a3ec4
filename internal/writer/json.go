package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/corregab/leitor-de-extrato/internal/models"
)

// WriteJSON writes transactions as an indented JSON array. Amounts render
// as decimal strings truncated to cents.
func WriteJSON(out io.Writer, txns []models.Transaction) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(txns); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteJSONToFile writes transactions to a JSON file at the given path.
func WriteJSONToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return WriteJSON(f, txns)
}
