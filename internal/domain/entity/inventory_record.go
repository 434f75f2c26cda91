package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord es el estado de inventario de un producto (1:1 con Product).
// CurrentStock nunca queda negativo: el ledger rechaza el movimiento antes de escribir.
type InventoryRecord struct {
	ID             string
	ProductID      string
	CurrentStock   decimal.Decimal
	MinimumStock   decimal.Decimal
	Location       string
	LastMovementAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowMinimum indica si el stock actual está en o por debajo del mínimo configurado.
func (r *InventoryRecord) BelowMinimum() bool {
	return r.CurrentStock.LessThanOrEqual(r.MinimumStock)
}
