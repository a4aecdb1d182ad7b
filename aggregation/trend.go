package aggregation

import (
	"time"

	"retail/model"

	"github.com/shopspring/decimal"
)

// PaymentBreakdown は支払方法別の売上合計です。0 の方法は含めません。
func PaymentBreakdown(sales []model.Sale) []model.PaymentTotal {
	totals := make(map[model.PaymentMethod]decimal.Decimal)
	for _, s := range sales {
		totals[s.PaymentMethod] = totals[s.PaymentMethod].Add(s.Total)
	}

	result := []model.PaymentTotal{}
	for _, m := range model.PaymentMethods {
		if t, ok := totals[m]; ok && t.IsPositive() {
			result = append(result, model.PaymentTotal{Method: m, Total: t})
		}
	}
	return result
}

// DailyTrend は直近 days 日分 (本日を含む) の日別売上・経費を古い順に返します。
// days が 0 以下なら空です。
func DailyTrend(snap model.Snapshot, now time.Time, days int) []model.DailyTotal {
	loc := now.Location()
	today := StartOfDay(now, loc)

	if days < 0 {
		days = 0
	}
	result := make([]model.DailyTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)
		inDay := func(t time.Time) bool {
			return !t.Before(day) && t.Before(next)
		}

		dt := model.DailyTotal{Date: day, Sales: decimal.Zero, Expenses: decimal.Zero}
		for _, s := range snap.Sales {
			if inDay(s.Date) {
				dt.Sales = dt.Sales.Add(s.Total)
			}
		}
		for _, e := range snap.Expenses {
			if inDay(e.Date) {
				dt.Expenses = dt.Expenses.Add(e.Amount)
			}
		}
		result = append(result, dt)
	}
	return result
}
