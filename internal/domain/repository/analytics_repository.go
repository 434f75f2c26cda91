package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository agrega cifras para el dashboard (consultas de solo lectura).
type AnalyticsRepository interface {
	// SumPaidInvoicesSince suma el total de facturas pagadas del usuario desde la fecha dada.
	SumPaidInvoicesSince(userID string, since time.Time) (decimal.Decimal, error)
	// SumExpensesSince suma los gastos del usuario desde la fecha dada.
	SumExpensesSince(userID string, since time.Time) (decimal.Decimal, error)
	// CountInvoicesByStatus cuenta facturas del usuario en un estado.
	CountInvoicesByStatus(userID, status string) (int, error)
}
