package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kinds de movimiento de inventario. Quantity siempre es positiva; el signo
// lo da el kind: increase/purchase suman, decrease/sale restan.
const (
	MovementKindIncrease = "increase"
	MovementKindDecrease = "decrease"
	MovementKindPurchase = "purchase"
	MovementKindSale     = "sale"
)

// Clasificación derivada para lectura (DisplayType).
const (
	DisplayTypePurchase   = "purchase"
	DisplayTypeSale       = "sale"
	DisplayTypeAdjustment = "adjustment"
)

// InventoryMovement es un hecho inmutable del historial de inventario: nunca se
// actualiza ni se borra. ResultingStock es el stock inmediatamente después de
// aplicar este movimiento, de modo que el stock previo siempre se puede
// reconstruir: previo = ResultingStock - Quantity (suma) o + Quantity (resta).
type InventoryMovement struct {
	ID             string
	ProductID      string
	Kind           string // increase | decrease | purchase | sale
	Quantity       decimal.Decimal
	Reason         string
	Date           time.Time
	ResultingStock decimal.Decimal
	CreatedAt      time.Time
}

// Increases indica si el kind suma stock.
func (m *InventoryMovement) Increases() bool {
	return m.Kind == MovementKindIncrease || m.Kind == MovementKindPurchase
}

// PreviousStock reconstruye el stock anterior a este movimiento.
func (m *InventoryMovement) PreviousStock() decimal.Decimal {
	if m.Increases() {
		return m.ResultingStock.Sub(m.Quantity)
	}
	return m.ResultingStock.Add(m.Quantity)
}

// DisplayType clasifica el movimiento para lectura. Los kinds purchase/sale son
// explícitos; los increase/decrease heredados se clasifican por el texto del
// motivo (referencias a "Compra" o a "Venta"/"Factura"), si no, es un ajuste.
func (m *InventoryMovement) DisplayType() string {
	switch m.Kind {
	case MovementKindPurchase:
		return DisplayTypePurchase
	case MovementKindSale:
		return DisplayTypeSale
	}
	reason := strings.ToLower(m.Reason)
	if strings.Contains(reason, "compra") {
		return DisplayTypePurchase
	}
	if strings.Contains(reason, "venta") || strings.Contains(reason, "factura") {
		return DisplayTypeSale
	}
	return DisplayTypeAdjustment
}

// ValidAdjustmentKind valida el kind para ajustes manuales (solo increase/decrease;
// purchase y sale los asignan los procesadores de compra y venta).
func ValidAdjustmentKind(kind string) bool {
	return kind == MovementKindIncrease || kind == MovementKindDecrease
}
