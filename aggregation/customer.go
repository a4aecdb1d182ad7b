package aggregation

import (
	"time"

	"retail/model"

	"github.com/shopspring/decimal"
)

// CustomerSummary は売上から顧客の購入実績を再計算します。
func CustomerSummary(snap model.Snapshot, customerID string) model.CustomerStats {
	stats := model.CustomerStats{CustomerID: customerID, TotalSpent: decimal.Zero}
	if customerID == "" {
		return stats
	}
	for _, s := range snap.Sales {
		if s.CustomerID != customerID {
			continue
		}
		stats.TotalSpent = stats.TotalSpent.Add(s.Total)
		stats.OrderCount++
		if stats.LastPurchaseDate == nil || s.Date.After(*stats.LastPurchaseDate) {
			d := s.Date
			stats.LastPurchaseDate = &d
		}
	}
	return stats
}

// ActiveCustomers は直近1か月以内に購入のある顧客です。
func ActiveCustomers(customers []model.Customer, now time.Time) []model.Customer {
	since := now.AddDate(0, -1, 0)
	result := []model.Customer{}
	for _, c := range customers {
		if c.LastPurchaseDate != nil && c.LastPurchaseDate.After(since) {
			result = append(result, c)
		}
	}
	return result
}
