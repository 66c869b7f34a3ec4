// Package parser holds the per-bank heuristics that turn extracted statement
// text into credit transactions. Each bank contributes a small Rules value;
// one generic driver walks pages and lines and applies them, so the banks
// differ only in classification, field extraction and the two extension
// points (Nubank's dated sections, Itaú's glyph-color veto).
package parser

import (
	"fmt"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/extractor"
	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
)

// Fields are the values a bank's rules recover from one accepted line.
type Fields struct {
	Date        string
	Description string
	Amount      money.Amount
	Type        string

	// amountText is the amount token exactly as it appears in the line;
	// the Itaú color veto looks it up in the page's glyph run.
	amountText string
}

// Rules identifies one bank's heuristics. Concrete rules additionally
// implement lineRules or sectioned.
type Rules interface {
	Bank() models.BankType
	BankName() string
}

// lineRules classify and extract isolated lines; this covers every bank
// except Nubank.
type lineRules interface {
	Rules
	// Classify reports whether the line represents an incoming credit.
	// It is pure: no side effects, input never mutated.
	Classify(line string) bool
	// Extract recovers date, amount, description and type from a line
	// that Classify accepted. ok=false drops the line silently.
	Extract(line string) (f Fields, ok bool)
}

// sectioned is implemented by rules whose credit eligibility is block-based
// rather than per-line: lines only count while inside a dated incoming
// section. The scan state is a fresh value per page.
type sectioned interface {
	Rules
	scanPage(lines []string) []sectionHit
}

// colorAware is implemented by rules that consult glyph fill color to veto
// lines that text alone cannot settle.
type colorAware interface {
	vetoByColor(f Fields, glyphs []extractor.Glyph) bool
}

type sectionHit struct {
	line   string
	fields Fields
}

// Parser is the public face of one bank's statement parser.
type Parser interface {
	// Parse walks the pages in order and returns the credit transactions
	// found, preserving page order and in-page line order. Faulty pages
	// and lines contribute nothing; they never abort the scan.
	Parse(pages []extractor.Page) []models.Transaction
	// BankName returns the human-readable bank name.
	BankName() string
}

// New returns the parser for the given bank type.
func New(bank models.BankType) (Parser, error) {
	switch bank {
	case models.BankItau:
		return &driver{rules: itauRules{}}, nil
	case models.BankSantander:
		return &driver{rules: santanderRules{}}, nil
	case models.BankNubank:
		return &driver{rules: nubankRules{}}, nil
	case models.BankPicPay:
		return &driver{rules: picpayRules{}}, nil
	case models.BankMercadoPago:
		return &driver{rules: mercadoPagoRules{}}, nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bank)
	}
}

// driver runs one bank's rules over a page sequence.
type driver struct {
	rules Rules
}

func (d *driver) BankName() string {
	return d.rules.BankName()
}

func (d *driver) Parse(pages []extractor.Page) []models.Transaction {
	var out []models.Transaction

	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		lines := strings.Split(page.Text, "\n")

		if s, ok := d.rules.(sectioned); ok {
			for _, hit := range s.scanPage(lines) {
				out = d.appendRecord(out, hit.line, hit.fields, page.Number)
			}
			continue
		}

		lr, ok := d.rules.(lineRules)
		if !ok {
			return out
		}
		for _, raw := range lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if !lr.Classify(line) {
				continue
			}
			f, ok := lr.Extract(line)
			if !ok {
				continue
			}
			if c, ok := d.rules.(colorAware); ok && len(page.Glyphs) > 0 {
				if c.vetoByColor(f, page.Glyphs) {
					continue
				}
			}
			out = d.appendRecord(out, line, f, page.Number)
		}
	}

	return out
}

// appendRecord builds the final transaction, enforcing the one invariant
// every bank shares: no record with a non-positive amount is ever emitted.
func (d *driver) appendRecord(out []models.Transaction, line string, f Fields, page int) []models.Transaction {
	if !f.Amount.Positive() {
		return out
	}
	return append(out, models.Transaction{
		Date:        f.Date,
		Description: f.Description,
		Amount:      f.Amount,
		Type:        f.Type,
		RawLine:     line,
		Page:        page,
	})
}

// AutoDetect tries to identify the bank from statement text content.
func AutoDetect(pages []extractor.Page) (models.BankType, error) {
	combined := strings.ToLower(extractor.JoinPages(pages))

	switch {
	case strings.Contains(combined, "mercado pago") || strings.Contains(combined, "mercadopago"):
		return models.BankMercadoPago, nil
	case strings.Contains(combined, "picpay"):
		return models.BankPicPay, nil
	case strings.Contains(combined, "nubank") || strings.Contains(combined, "nu pagamentos"):
		return models.BankNubank, nil
	case strings.Contains(combined, "santander"):
		return models.BankSantander, nil
	case strings.Contains(combined, "itaú") || strings.Contains(combined, "itau"):
		return models.BankItau, nil
	}

	return "", fmt.Errorf("could not auto-detect bank from statement content; specify the bank explicitly")
}
