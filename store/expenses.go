package store

import (
	"strings"

	"retail/model"
)

// AddExpense は経費を記録します。日付が未指定の場合は現在時刻です。
func (s *Store) AddExpense(in model.NewExpense) (model.Expense, error) {
	if !in.Category.Valid() {
		return model.Expense{}, validationErrorf("invalid expense category: %q", in.Category)
	}
	if in.Amount.IsNegative() {
		return model.Expense{}, validationErrorf("expense amount must not be negative")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return model.Expense{}, validationErrorf("expense description is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	e := model.Expense{
		ID:          s.newID(),
		Category:    in.Category,
		Amount:      in.Amount,
		Description: description,
		Date:        date,
		Notes:       in.Notes,
	}
	next := append(cloneOrEmpty(s.expenses), e)
	if err := s.persist(change{KeyExpenses, next}); err != nil {
		return model.Expense{}, err
	}
	s.expenses = next
	return e, nil
}
