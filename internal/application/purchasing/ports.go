package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y compras (para CreatePurchase/UpdatePurchase).
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// Ledger es el puerto hacia el motor de stock (misma transacción del caller).
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
