package report

import (
	"net/http"
	"strconv"
	"time"

	"retail/aggregation"
	"retail/model"
	"retail/render"
	"retail/store"
)

// DashboardHandler はダッシュボード集計と当月アクティブ顧客数を返します。
func DashboardHandler(st *store.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()
		t := now()
		render.JSON(w, http.StatusOK, struct {
			model.DashboardStats
			ActiveCustomers int `json:"activeCustomers"`
		}{
			DashboardStats:  aggregation.Dashboard(snap, t),
			ActiveCustomers: len(aggregation.ActiveCustomers(snap.Customers, t)),
		})
	}
}

// ReportHandler は ?period=daily|weekly|monthly の期間レポートを返します。
func ReportHandler(st *store.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("period")
		if raw == "" {
			raw = string(model.PeriodDaily)
		}
		period, err := aggregation.ParsePeriod(raw)
		if err != nil {
			render.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		render.JSON(w, http.StatusOK, aggregation.Report(st.Snapshot(), period, now()))
	}
}

// TrendHandler は日別の売上・経費推移を返します (?days=、既定7日)。
func TrendHandler(st *store.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > 366 {
				render.Error(w, "days は 1 から 366 の範囲で指定してください。", http.StatusBadRequest)
				return
			}
			days = n
		}
		render.JSON(w, http.StatusOK, aggregation.DailyTrend(st.Snapshot(), now(), days))
	}
}
