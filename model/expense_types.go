package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseIce       ExpenseCategory = "ice"
	ExpenseRent      ExpenseCategory = "rent"
	ExpenseUtilities ExpenseCategory = "utilities"
	ExpenseOther     ExpenseCategory = "other"
)

var ExpenseCategories = []ExpenseCategory{
	ExpenseTransport, ExpenseIce, ExpenseRent, ExpenseUtilities, ExpenseOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense は経費1件です。作成後は変更されません。
type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}

type NewExpense struct {
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes"`
}
