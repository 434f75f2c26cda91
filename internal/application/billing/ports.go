package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y facturación (para CreateInvoice).
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// Ledger es el puerto hacia el motor de stock. ApplyInTx usa los repositorios
// del caller (misma transacción); si retorna error (ej: ErrInsufficientStock)
// el caller debe abortar para que el rollback descarte todo el comando.
type Ledger interface {
	ApplyInTx(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		productID, kind string,
		quantity decimal.Decimal,
		reason string,
		date time.Time,
		now time.Time,
	) (*entity.InventoryMovement, error)
}
