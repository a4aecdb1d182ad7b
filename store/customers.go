package store

import (
	"fmt"
	"strings"

	"retail/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// CreateCustomer は顧客を登録します。購入累計は 0 から始まります。
func (s *Store) CreateCustomer(in model.NewCustomer) (model.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Customer{}, validationErrorf("customer name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Customer{
		ID:             s.newID(),
		Name:           name,
		PhoneNumber:    strings.TrimSpace(in.PhoneNumber),
		Email:          strings.TrimSpace(in.Email),
		Address:        strings.TrimSpace(in.Address),
		TotalPurchases: decimal.Zero,
		CreatedAt:      s.now(),
	}
	next := append(cloneOrEmpty(s.customers), c)
	if err := s.persist(change{KeyCustomers, next}); err != nil {
		return model.Customer{}, err
	}
	s.customers = next
	return c, nil
}

func (s *Store) UpdateCustomer(id string, patch model.CustomerPatch) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexCustomer(s.customers, id)
	if i < 0 {
		return model.Customer{}, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	updated := patch.Apply(s.customers[i])
	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		return model.Customer{}, validationErrorf("customer name is required")
	}

	next := cloneOrEmpty(s.customers)
	next[i] = updated
	if err := s.persist(change{KeyCustomers, next}); err != nil {
		return model.Customer{}, err
	}
	s.customers = next
	return updated, nil
}

// SearchCustomers は名前・メール(大文字小文字無視)または電話番号の部分一致で絞り込みます。
func (s *Store) SearchCustomers(query string) []model.Customer {
	q := strings.TrimSpace(query)
	fold := cases.Fold()
	needle := fold.String(q)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Customer{}
	for _, c := range s.customers {
		if q == "" ||
			strings.Contains(fold.String(c.Name), needle) ||
			(c.PhoneNumber != "" && strings.Contains(c.PhoneNumber, q)) ||
			(c.Email != "" && strings.Contains(fold.String(c.Email), needle)) {
			result = append(result, c)
		}
	}
	return result
}
