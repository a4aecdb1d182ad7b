package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot は集計に渡す全コレクションの写しです。
type Snapshot struct {
	Products     []Product
	Sales        []Sale
	Expenses     []Expense
	Customers    []Customer
	Transactions []InventoryTransaction
}

type ProductQuantity struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// DashboardStats はダッシュボード表示用の集計結果です。
type DashboardStats struct {
	TodaysSales        decimal.Decimal   `json:"todaysSales"`
	TodaysSalesCount   int               `json:"todaysSalesCount"`
	TotalRevenue       decimal.Decimal   `json:"totalRevenue"`
	TotalExpenses      decimal.Decimal   `json:"totalExpenses"`
	NetProfit          decimal.Decimal   `json:"netProfit"`
	LowStockProducts   []Product         `json:"lowStockProducts"`
	OutOfStockProducts []Product         `json:"outOfStockProducts"`
	TopSellingProducts []ProductQuantity `json:"topSellingProducts"`
}

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

type ProductRevenue struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ReportData は期間レポートです。
type ReportData struct {
	Period        ReportPeriod     `json:"period"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	Sales         []Sale           `json:"sales"`
	Expenses      []Expense        `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetProfit     decimal.Decimal  `json:"netProfit"`
	TopProducts   []ProductRevenue `json:"topProducts"`
	Payments      []PaymentTotal   `json:"payments"`
}

type PaymentTotal struct {
	Method PaymentMethod   `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

// DailyTotal は1日分の売上と経費です。
type DailyTotal struct {
	Date     time.Time       `json:"date"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
}

type CustomerStats struct {
	CustomerID       string          `json:"customerId"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	OrderCount       int             `json:"orderCount"`
	LastPurchaseDate *time.Time      `json:"lastPurchaseDate,omitempty"`
}
