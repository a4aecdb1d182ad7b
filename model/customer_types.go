package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer は顧客1件です。
// TotalPurchases と LastPurchaseDate は売上登録でのみ更新されます。
type Customer struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	PhoneNumber      string          `json:"phoneNumber,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	LastPurchaseDate *time.Time      `json:"lastPurchaseDate,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type NewCustomer struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// CustomerPatch は顧客情報の部分更新です。購入実績は含みません。
type CustomerPatch struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (patch CustomerPatch) Apply(c Customer) Customer {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		c.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	return c
}
