package aggregation

import (
	"fmt"
	"sort"
	"time"

	"retail/model"
)

const (
	// LowStockThreshold 以下 (かつ 0 より多い) の在庫を在庫僅少とします。
	LowStockThreshold = 5
	// TopProductsLimit はランキングの件数です。
	TopProductsLimit = 5
)

// Dashboard はダッシュボードの集計を行います。
// 「本日」は now のロケーションでの暦日です。
func Dashboard(snap model.Snapshot, now time.Time) model.DashboardStats {
	loc := now.Location()

	todays := filterSales(snap.Sales, func(s model.Sale) bool {
		return sameDay(s.Date, now, loc)
	})

	revenue := sumSales(snap.Sales)
	expenses := sumExpenses(snap.Expenses)

	stats := model.DashboardStats{
		TodaysSales:        sumSales(todays),
		TodaysSalesCount:   len(todays),
		TotalRevenue:       revenue,
		TotalExpenses:      expenses,
		NetProfit:          revenue.Sub(expenses),
		LowStockProducts:   []model.Product{},
		OutOfStockProducts: []model.Product{},
		TopSellingProducts: TopSelling(snap.Sales, snap.Products, TopProductsLimit),
	}

	for _, p := range snap.Products {
		switch {
		case p.Stock == 0:
			stats.OutOfStockProducts = append(stats.OutOfStockProducts, p)
		case p.Stock > 0 && p.Stock <= LowStockThreshold:
			stats.LowStockProducts = append(stats.LowStockProducts, p)
		}
	}
	return stats
}

// TopSelling は販売数量の多い順に商品を返します。
// 既に削除された商品は除外し、同数の場合は初出順を保ちます。
func TopSelling(sales []model.Sale, products []model.Product, limit int) []model.ProductQuantity {
	byID := productMap(products)
	result := []model.ProductQuantity{}
	for _, t := range tallyItems(sales) {
		p, ok := byID[t.productID]
		if !ok {
			continue
		}
		result = append(result, model.ProductQuantity{Product: p, Quantity: t.quantity})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Quantity > result[j].Quantity
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// TopByRevenue は売上金額の多い順に商品を返します。
func TopByRevenue(sales []model.Sale, products []model.Product, limit int) []model.ProductRevenue {
	byID := productMap(products)
	result := []model.ProductRevenue{}
	for _, t := range tallyItems(sales) {
		p, ok := byID[t.productID]
		if !ok {
			continue
		}
		result = append(result, model.ProductRevenue{Product: p, Quantity: t.quantity, Revenue: t.revenue})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Revenue.GreaterThan(result[j].Revenue)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ParsePeriod はレポート期間名を検証します。
func ParsePeriod(s string) (model.ReportPeriod, error) {
	switch p := model.ReportPeriod(s); p {
	case model.PeriodDaily, model.PeriodWeekly, model.PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown report period %q", s)
	}
}

// PeriodRange は期間の開始・終了を返します。
//   - daily:   本日 0:00 〜 now
//   - weekly:  now の7日前 〜 now
//   - monthly: now の1か月前 〜 now
func PeriodRange(period model.ReportPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case model.PeriodWeekly:
		return now.AddDate(0, 0, -7), now
	case model.PeriodMonthly:
		return now.AddDate(0, -1, 0), now
	default:
		return StartOfDay(now, now.Location()), now
	}
}

// Report は期間内の売上・経費を集計します。
func Report(snap model.Snapshot, period model.ReportPeriod, now time.Time) model.ReportData {
	start, end := PeriodRange(period, now)

	sales := filterSales(snap.Sales, func(s model.Sale) bool {
		return within(s.Date, start, end)
	})
	expenses := filterExpenses(snap.Expenses, func(e model.Expense) bool {
		return within(e.Date, start, end)
	})

	revenue := sumSales(sales)
	spent := sumExpenses(expenses)

	return model.ReportData{
		Period:        period,
		StartDate:     start,
		EndDate:       end,
		Sales:         sales,
		Expenses:      expenses,
		TotalRevenue:  revenue,
		TotalExpenses: spent,
		NetProfit:     revenue.Sub(spent),
		TopProducts:   TopByRevenue(sales, snap.Products, TopProductsLimit),
		Payments:      PaymentBreakdown(sales),
	}
}
