package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es la cabecera de una compra a proveedor. A diferencia de Invoice,
// una compra se puede actualizar: el procesador revierte los movimientos de los
// items anteriores y aplica los nuevos (ver purchasing.UpdatePurchase).
type Purchase struct {
	ID            string
	UserID        string
	SupplierID    string
	InvoiceNumber string
	Date          time.Time
	PaymentMethod string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseItem es una línea de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
