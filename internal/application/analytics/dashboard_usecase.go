package analytics

import (
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// DashboardUseCase arma las cifras del dashboard: ingresos y gastos del mes en
// curso, ganancia neta y facturas pendientes de cobro.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats calcula las cifras desde el primer día del mes en curso.
func (uc *DashboardUseCase) Stats(userID string) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenue, err := uc.repo.SumPaidInvoicesSince(userID, monthStart)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.repo.SumExpensesSince(userID, monthStart)
	if err != nil {
		return nil, err
	}
	pending, err := uc.repo.CountInvoicesByStatus(userID, entity.InvoiceStatusSent)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		MonthlyRevenue:  revenue,
		MonthlyExpenses: expenses,
		NetProfit:       revenue.Sub(expenses),
		PendingInvoices: pending,
	}, nil
}
