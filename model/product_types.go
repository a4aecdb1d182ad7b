package model

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// ProductCategory は商品の分類です。
type ProductCategory string

const (
	CategoryFreshFish      ProductCategory = "freshFish"
	CategoryFrozenFish     ProductCategory = "frozenFish"
	CategoryDrinks         ProductCategory = "drinks"
	CategorySpices         ProductCategory = "spices"
	CategoryOtherGroceries ProductCategory = "otherGroceries"
)

// ProductCategories は画面表示順の分類一覧です。
var ProductCategories = []ProductCategory{
	CategoryFreshFish,
	CategoryFrozenFish,
	CategoryDrinks,
	CategorySpices,
	CategoryOtherGroceries,
}

func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseProductCategory は大文字小文字を区別せずに分類名を解決します。
// (CSV取込では "FreshFish" や "FRESHFISH" のような表記揺れがあるため)
func ParseProductCategory(s string) (ProductCategory, bool) {
	fold := cases.Fold()
	needle := fold.String(s)
	for _, known := range ProductCategories {
		if fold.String(string(known)) == needle {
			return known, true
		}
	}
	return "", false
}

// Product は商品マスタ1件です。Stock は常に 0 以上です。
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewProduct は商品登録の入力です。ID と日時はストア側で採番します。
type NewProduct struct {
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// ProductPatch は部分更新です。nil のフィールドは変更しません。
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Description *string          `json:"description,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

// Apply は patch を p に適用した結果を返します。p 自体は変更しません。
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	return p
}
