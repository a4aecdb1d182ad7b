package store

import (
	"retail/model"

	"github.com/shopspring/decimal"
)

// RecordSale は売上を登録し、在庫と顧客の購入実績を更新します。
//
// 全明細の在庫チェックを変更前に行い、1件でも不足があれば何も変更しません。
// 売上・商品・顧客の3コレクションは1回の SaveAll で保存され、
// 保存に失敗した場合はメモリ上の状態も変わりません。
func (s *Store) RecordSale(in model.NewSale) (model.Sale, error) {
	if len(in.Items) == 0 {
		return model.Sale{}, validationErrorf("sale must contain at least one item")
	}
	if !in.PaymentMethod.Valid() {
		return model.Sale{}, validationErrorf("invalid payment method: %q", in.PaymentMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 同じ商品が複数行にある場合は合計数量で在庫を確認する
	requested := make(map[string]int)
	order := []string{}
	items := make([]model.SaleItem, 0, len(in.Items))
	total := decimal.Zero

	for _, input := range in.Items {
		if input.Quantity <= 0 {
			return model.Sale{}, validationErrorf("quantity must be greater than zero")
		}
		i := indexProduct(s.products, input.ProductID)
		if i < 0 {
			return model.Sale{}, validationErrorf("product %s not found", input.ProductID)
		}
		p := s.products[i]
		if _, seen := requested[p.ID]; !seen {
			order = append(order, p.ID)
		}
		// p.Stock-requested は負にならないので、加算前に比較すればオーバーフローしない
		if input.Quantity > p.Stock-requested[p.ID] {
			return model.Sale{}, validationErrorf("insufficient stock for %s: requested %d more, available %d",
				p.Name, input.Quantity, p.Stock-requested[p.ID])
		}
		requested[p.ID] += input.Quantity

		item := model.NewSaleItem(p, input.Quantity)
		items = append(items, item)
		total = total.Add(item.Total)
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	sale := model.Sale{
		ID:            s.newID(),
		Items:         items,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		Date:          date,
		CustomerID:    in.CustomerID,
		Notes:         in.Notes,
	}

	nextSales := append(cloneOrEmpty(s.sales), sale)
	nextProducts := cloneOrEmpty(s.products)
	for _, id := range order {
		i := indexProduct(nextProducts, id)
		nextProducts[i].Stock -= requested[id]
		nextProducts[i].UpdatedAt = later(now, nextProducts[i].UpdatedAt)
	}

	changes := []change{{KeySales, nextSales}, {KeyProducts, nextProducts}}

	nextCustomers := s.customers
	if in.CustomerID != "" {
		if i := indexCustomer(s.customers, in.CustomerID); i >= 0 {
			nextCustomers = cloneOrEmpty(s.customers)
			purchased := date
			nextCustomers[i].TotalPurchases = nextCustomers[i].TotalPurchases.Add(total)
			nextCustomers[i].LastPurchaseDate = &purchased
			changes = append(changes, change{KeyCustomers, nextCustomers})
		}
	}

	if err := s.persist(changes...); err != nil {
		return model.Sale{}, err
	}
	s.sales = nextSales
	s.products = nextProducts
	s.customers = nextCustomers
	return sale, nil
}
