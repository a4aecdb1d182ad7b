package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod は支払方法です。
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobileMoney"
	PaymentBank        PaymentMethod = "bank"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentMobileMoney, PaymentBank}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// SaleItem は売上明細です。ProductName と Price は販売時点のスナップショットです。
type SaleItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// NewSaleItem は商品の現在の名称と単価で明細を作ります。
func NewSaleItem(p Product, quantity int) SaleItem {
	return SaleItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		Price:       p.Price,
		Total:       p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Sale は売上伝票です。作成後は変更されません。
type Sale struct {
	ID            string          `json:"id"`
	Items         []SaleItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customerId,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// SaleItemInput は売上登録時の明細入力です。
type SaleItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type NewSale struct {
	Items         []SaleItemInput `json:"items"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customerId"`
	Notes         string          `json:"notes"`
}
