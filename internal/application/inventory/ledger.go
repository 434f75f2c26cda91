package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// StockLedger es el único punto que muta InventoryRecord.CurrentStock y agrega
// movimientos al historial. Todos los caminos de escritura (stock inicial,
// ventas, compras, ajustes manuales) pasan por ApplyInTx, siempre dentro de la
// transacción del comando que lo invoca.
type StockLedger struct{}

// NewStockLedger construye el ledger (sin estado propio).
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// ApplyInTx aplica un movimiento de stock usando los repositorios del caller
// (misma transacción). Semántica:
//   - quantity debe ser > 0; el signo lo decide el kind.
//   - increase/purchase suman; decrease/sale restan.
//   - Si el producto no tiene InventoryRecord se crea con stock 0 (get-or-create);
//     nunca falla solo por falta de registro.
//   - Si el stock resultante sería negativo retorna ErrInsufficientStock sin
//     escribir nada; el rollback de la tx del caller descarta el resto del comando.
//   - Actualiza CurrentStock y LastMovementAt y agrega exactamente un movimiento
//     cuyo ResultingStock es el stock después de aplicar.
func (l *StockLedger) ApplyInTx(
	movRepo repository.InventoryMovementRepository,
	recRepo repository.InventoryRecordRepository,
	productID, kind string,
	quantity decimal.Decimal,
	reason string,
	date time.Time,
	now time.Time,
) (*entity.InventoryMovement, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch kind {
	case entity.MovementKindIncrease, entity.MovementKindDecrease,
		entity.MovementKindPurchase, entity.MovementKindSale:
	default:
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del producto (SELECT FOR UPDATE) para que dos comandos
	// concurrentes sobre el mismo producto no lean el mismo stock.
	record, err := recRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &entity.InventoryRecord{
			ID:           uuid.New().String(),
			ProductID:    productID,
			CurrentStock: decimal.Zero,
			MinimumStock: decimal.Zero,
			CreatedAt:    now,
		}
	}

	var newStock decimal.Decimal
	if kind == entity.MovementKindIncrease || kind == entity.MovementKindPurchase {
		newStock = record.CurrentStock.Add(quantity)
	} else {
		newStock = record.CurrentStock.Sub(quantity)
	}
	if newStock.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	record.CurrentStock = newStock
	record.LastMovementAt = &now
	record.UpdatedAt = now
	if err := recRepo.Upsert(record); err != nil {
		return nil, err
	}

	movement := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		Kind:           kind,
		Quantity:       quantity,
		Reason:         reason,
		Date:           date,
		ResultingStock: newStock,
		CreatedAt:      now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return movement, nil
}
