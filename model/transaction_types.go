package model

import "time"

// TransactionType は入出庫の区分です。
type TransactionType string

const (
	TransactionIn  TransactionType = "in"
	TransactionOut TransactionType = "out"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

// SignedQuantity は在庫に加算する符号付き数量を返します。
func (t TransactionType) SignedQuantity(qty int) int {
	switch t {
	case TransactionIn:
		return qty
	case TransactionOut:
		return -qty
	default:
		return 0
	}
}

// InventoryTransaction は入出庫台帳の1行です。作成後は変更されません。
type InventoryTransaction struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Type      TransactionType `json:"type"`
	Quantity  int             `json:"quantity"`
	Date      time.Time       `json:"date"`
	Supplier  string          `json:"supplier,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

type NewTransaction struct {
	ProductID string          `json:"productId"`
	Type      TransactionType `json:"type"`
	Quantity  int             `json:"quantity"`
	Date      time.Time       `json:"date"`
	Supplier  string          `json:"supplier"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes"`
}
