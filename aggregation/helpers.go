package aggregation

import (
	"time"

	"retail/model"

	"github.com/shopspring/decimal"
)

// StartOfDay は t と同じ暦日の 0:00 を loc で返します。
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// sameDay は時刻を切り捨てた日付同士で比較します。
func sameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// within は start <= t <= end の場合に true です。
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func sumSales(sales []model.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total
}

func sumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func filterSales(sales []model.Sale, keep func(model.Sale) bool) []model.Sale {
	result := []model.Sale{}
	for _, s := range sales {
		if keep(s) {
			result = append(result, s)
		}
	}
	return result
}

func filterExpenses(expenses []model.Expense, keep func(model.Expense) bool) []model.Expense {
	result := []model.Expense{}
	for _, e := range expenses {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// productTally は商品ID単位の販売集計です。
type productTally struct {
	productID string
	quantity  int
	revenue   decimal.Decimal
}

// tallyItems は明細を商品ID単位に集計します。結果は初出順です。
func tallyItems(sales []model.Sale) []*productTally {
	var order []*productTally
	byID := make(map[string]*productTally)
	for _, s := range sales {
		for _, item := range s.Items {
			t, ok := byID[item.ProductID]
			if !ok {
				t = &productTally{productID: item.ProductID, revenue: decimal.Zero}
				byID[item.ProductID] = t
				order = append(order, t)
			}
			t.quantity += item.Quantity
			t.revenue = t.revenue.Add(item.Total)
		}
	}
	return order
}

func productMap(products []model.Product) map[string]model.Product {
	m := make(map[string]model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}
