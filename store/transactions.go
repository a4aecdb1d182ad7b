package store

import (
	"math"
	"sort"

	"retail/model"
)

// RecordTransaction は入出庫を記録し、商品在庫を増減します。
// 出庫で在庫が負になる場合は変更前に拒否します (0 への切り詰めはしません)。
func (s *Store) RecordTransaction(in model.NewTransaction) (model.InventoryTransaction, error) {
	if !in.Type.Valid() {
		return model.InventoryTransaction{}, validationErrorf("invalid transaction type: %q", in.Type)
	}
	if in.Quantity <= 0 {
		return model.InventoryTransaction{}, validationErrorf("quantity must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexProduct(s.products, in.ProductID)
	if i < 0 {
		return model.InventoryTransaction{}, validationErrorf("product %s not found", in.ProductID)
	}
	p := s.products[i]
	switch in.Type {
	case model.TransactionOut:
		if in.Quantity > p.Stock {
			return model.InventoryTransaction{}, validationErrorf("insufficient stock for %s: requested %d, available %d",
				p.Name, in.Quantity, p.Stock)
		}
	case model.TransactionIn:
		if in.Quantity > math.MaxInt-p.Stock {
			return model.InventoryTransaction{}, validationErrorf("stock for %s would exceed the maximum: current %d, adding %d",
				p.Name, p.Stock, in.Quantity)
		}
	}
	newStock := p.Stock + in.Type.SignedQuantity(in.Quantity)

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	t := model.InventoryTransaction{
		ID:        s.newID(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Date:      date,
		Supplier:  in.Supplier,
		Reason:    in.Reason,
		Notes:     in.Notes,
	}

	nextTransactions := append(cloneOrEmpty(s.transactions), t)
	nextProducts := cloneOrEmpty(s.products)
	nextProducts[i].Stock = newStock
	nextProducts[i].UpdatedAt = later(now, p.UpdatedAt)

	if err := s.persist(change{KeyTransactions, nextTransactions}, change{KeyProducts, nextProducts}); err != nil {
		return model.InventoryTransaction{}, err
	}
	s.transactions = nextTransactions
	s.products = nextProducts
	return t, nil
}

// TransactionHistory は入出庫を新しい順に返します。
func (s *Store) TransactionHistory() []model.InventoryTransaction {
	history := s.Transactions()
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history
}
