package main

import (
	"net/http"
	"time"

	"retail/customer"
	"retail/database"
	"retail/expense"
	"retail/inout"
	"retail/product"
	"retail/render"
	"retail/report"
	"retail/sale"
	"retail/store"
)

func SetupRoutes(mux *http.ServeMux, st *store.Store, kv *database.KVStore) {
	mux.HandleFunc("/api/products", product.ListProductsHandler(st))
	mux.HandleFunc("/api/products/create", product.CreateProductHandler(st))
	mux.HandleFunc("/api/products/update/", product.UpdateProductHandler(st))
	mux.HandleFunc("/api/products/delete/", product.DeleteProductHandler(st))
	mux.HandleFunc("/api/products/import", product.ImportProductsHandler(st))

	mux.HandleFunc("/api/sales", sale.ListSalesHandler(st))
	mux.HandleFunc("/api/sales/record", sale.RecordSaleHandler(st))

	mux.HandleFunc("/api/inventory/transactions", inout.GetTransactionsHandler(st))
	mux.HandleFunc("/api/inventory/record", inout.RecordTransactionHandler(st))

	mux.HandleFunc("/api/customers", customer.ListCustomersHandler(st))
	mux.HandleFunc("/api/customers/create", customer.CreateCustomerHandler(st))
	mux.HandleFunc("/api/customers/update/", customer.UpdateCustomerHandler(st))
	mux.HandleFunc("/api/customers/stats/", customer.CustomerStatsHandler(st))

	mux.HandleFunc("/api/expenses", expense.ListExpensesHandler(st))
	mux.HandleFunc("/api/expenses/create", expense.CreateExpenseHandler(st))

	mux.HandleFunc("/api/dashboard", report.DashboardHandler(st, time.Now))
	mux.HandleFunc("/api/reports", report.ReportHandler(st, time.Now))
	mux.HandleFunc("/api/reports/trend", report.TrendHandler(st, time.Now))

	mux.HandleFunc("/api/status", StatusHandler(st, kv))
	mux.HandleFunc("/api/data/reload", ReloadHandler(st))
	mux.HandleFunc("/api/data/clear", ClearDataHandler(st))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			render.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
