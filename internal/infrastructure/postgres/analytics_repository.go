package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación para el dashboard (solo lectura, siempre sobre el pool).
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SumPaidInvoicesSince suma el total de facturas pagadas del usuario desde la fecha dada.
func (r *AnalyticsRepo) SumPaidInvoicesSince(userID string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM invoices
		WHERE user_id = $1 AND status = 'paid' AND date >= $2`
	var sum decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query, userID, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum paid invoices: %w", err)
	}
	return sum, nil
}

// SumExpensesSince suma los gastos del usuario desde la fecha dada.
func (r *AnalyticsRepo) SumExpensesSince(userID string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND date >= $2`
	var sum decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query, userID, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return sum, nil
}

// CountInvoicesByStatus cuenta facturas del usuario en un estado.
func (r *AnalyticsRepo) CountInvoicesByStatus(userID, status string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE user_id = $1 AND status = $2`,
		userID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices by status: %w", err)
	}
	return count, nil
}
