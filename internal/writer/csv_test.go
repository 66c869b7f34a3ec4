package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

func mustAmount(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.ParseBR(s)
	if err != nil {
		t.Fatalf("ParseBR(%q): %v", s, err)
	}
	return a
}

func sampleTransactions(t *testing.T) []models.Transaction {
	t.Helper()
	return []models.Transaction{
		{
			Date:        "02/06/2025",
			Description: "PIX TRANSF MARIA",
			Amount:      mustAmount(t, "1.500,00"),
			Type:        "PIX",
			RawLine:     "02/06/2025 PIX TRANSF MARIA 1.500,00",
			Page:        1,
		},
		{
			Description: "CREDITO EM CONTA",
			Amount:      mustAmount(t, "42,10"),
			Type:        "CRÉDITO",
			RawLine:     "CREDITO EM CONTA 42,10",
			Page:        2,
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleTransactions(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Data,Descrição,Valor,Tipo,Linha Original,Página") {
		t.Error("expected column headers")
	}
	if !strings.Contains(output, "02/06/2025,PIX TRANSF MARIA,1500.00,PIX") {
		t.Error("expected first transaction row with truncated decimal amount")
	}
	// The raw line holds a comma, so the csv writer must quote it.
	if !strings.Contains(output, `"02/06/2025 PIX TRANSF MARIA 1.500,00"`) {
		t.Error("expected quoted raw line")
	}
	if !strings.Contains(output, "42.10") {
		t.Error("expected second transaction amount")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 1 header + 2 transactions = 3
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}

	// A date-less transaction leaves the first field empty.
	if !strings.HasPrefix(lines[2], ",CREDITO EM CONTA") {
		t.Errorf("expected empty date field, got %q", lines[2])
	}
}

func TestCSVWriter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}
