package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse cifras del mes en curso para el dashboard.
// Los nombres de campo son los que consume el frontend.
type DashboardStatsResponse struct {
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	PendingInvoices int             `json:"pendingInvoices"`
}
