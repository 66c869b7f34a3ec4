package writer

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, "Nubank", sampleTransactions(t))

	output := buf.String()

	if !strings.Contains(output, "EXTRATO NUBANK - CRÉDITOS") {
		t.Error("expected provider label header")
	}
	if !strings.Contains(output, "1500,00") {
		t.Error("expected comma-decimal row amount")
	}
	if !strings.Contains(output, "R$ 1.542,10") {
		t.Errorf("expected grouped Brazilian total, got:\n%s", output)
	}
	// The date-less row renders a placeholder.
	if !strings.Contains(output, "-            | CREDITO EM CONTA") {
		t.Errorf("expected date placeholder, got:\n%s", output)
	}
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, "Itaú", nil)

	if !strings.Contains(buf.String(), "Nenhum crédito encontrado.") {
		t.Error("expected empty-statement message")
	}
}

func TestWriteAmounts(t *testing.T) {
	txns := sampleTransactions(t)

	var buf bytes.Buffer
	WriteAmounts(&buf, txns, false)
	if buf.String() != "1500.00\n42.10\n" {
		t.Errorf("point decimals: got %q", buf.String())
	}

	buf.Reset()
	WriteAmounts(&buf, txns, true)
	if buf.String() != "1500,00\n42,10\n" {
		t.Errorf("comma decimals: got %q", buf.String())
	}
}
