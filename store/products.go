package store

import (
	"fmt"
	"strings"

	"retail/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

func validateProductFields(name string, category model.ProductCategory, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return validationErrorf("product name is required")
	}
	if !category.Valid() {
		return validationErrorf("invalid product category: %q", category)
	}
	if price.IsNegative() {
		return validationErrorf("price must not be negative")
	}
	if stock < 0 {
		return validationErrorf("stock must not be negative")
	}
	return nil
}

func (s *Store) buildProduct(in model.NewProduct) model.Product {
	now := s.now()
	return model.Product{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateProduct は商品を登録します。
func (s *Store) CreateProduct(in model.NewProduct) (model.Product, error) {
	if err := validateProductFields(in.Name, in.Category, in.Price, in.Stock); err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.buildProduct(in)
	next := append(cloneOrEmpty(s.products), p)
	if err := s.persist(change{KeyProducts, next}); err != nil {
		return model.Product{}, err
	}
	s.products = next
	return p, nil
}

// ImportProducts は複数商品をまとめて登録します。保存は1回です。
// 1件でも不正な入力があれば何も登録しません。
func (s *Store) ImportProducts(inputs []model.NewProduct) ([]model.Product, error) {
	for i, in := range inputs {
		if err := validateProductFields(in.Name, in.Category, in.Price, in.Stock); err != nil {
			return nil, validationErrorf("row %d: %v", i+1, err)
		}
	}
	if len(inputs) == 0 {
		return []model.Product{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]model.Product, 0, len(inputs))
	for _, in := range inputs {
		created = append(created, s.buildProduct(in))
	}
	next := append(cloneOrEmpty(s.products), created...)
	if err := s.persist(change{KeyProducts, next}); err != nil {
		return nil, err
	}
	s.products = next
	return created, nil
}

// UpdateProduct は商品を部分更新します。UpdatedAt は巻き戻りません。
func (s *Store) UpdateProduct(id string, patch model.ProductPatch) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexProduct(s.products, id)
	if i < 0 {
		return model.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	updated := patch.Apply(s.products[i])
	updated.Name = strings.TrimSpace(updated.Name)
	if err := validateProductFields(updated.Name, updated.Category, updated.Price, updated.Stock); err != nil {
		return model.Product{}, err
	}
	updated.ID = id
	updated.UpdatedAt = later(s.now(), s.products[i].UpdatedAt)

	next := cloneOrEmpty(s.products)
	next[i] = updated
	if err := s.persist(change{KeyProducts, next}); err != nil {
		return model.Product{}, err
	}
	s.products = next
	return updated, nil
}

// DeleteProduct は商品を削除します。過去の売上・入出庫が参照するIDはそのまま残ります。
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexProduct(s.products, id) < 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	next := make([]model.Product, 0, len(s.products)-1)
	for _, p := range s.products {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if err := s.persist(change{KeyProducts, next}); err != nil {
		return err
	}
	s.products = next
	return nil
}

// SearchProducts は商品名の部分一致(大文字小文字無視)と分類で絞り込みます。
// category が空の場合は全分類が対象です。
func (s *Store) SearchProducts(query string, category model.ProductCategory) []model.Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Product{}
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(p.Name), needle) {
			continue
		}
		result = append(result, p)
	}
	return result
}
