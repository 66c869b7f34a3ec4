package models

import "github.com/corregab/leitor-de-extrato/internal/money"

// Transaction represents a single credit (incoming) entry found in a statement.
// Amount is always strictly positive; debit and summary lines never become
// transactions.
type Transaction struct {
	Date        string       `json:"date,omitempty"` // empty only for Santander lines without a date token
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
	Type        string       `json:"transaction_type"`
	RawLine     string       `json:"raw_line"`
	Page        int          `json:"page"` // 1-based page index
}

// BankType represents supported statement formats.
type BankType string

const (
	BankItau        BankType = "itau"
	BankSantander   BankType = "santander"
	BankNubank      BankType = "nubank"
	BankPicPay      BankType = "picpay"
	BankMercadoPago BankType = "mercadopago"
)

// All lists every supported bank, in the order shown to users.
func All() []BankType {
	return []BankType{BankItau, BankSantander, BankNubank, BankPicPay, BankMercadoPago}
}
