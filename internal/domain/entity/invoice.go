package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusPending = "pending"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice es la cabecera de una factura de venta. Number es único por usuario.
type Invoice struct {
	ID        string
	UserID    string
	ClientID  string
	Number    string
	Date      time.Time
	DueDate   time.Time
	Status    string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceItem es una línea de factura. Quantity, UnitPrice y Total son una foto
// del producto al momento de crear la factura; no cambian si el producto cambia.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// ValidInvoiceStatus valida el estado contra los valores permitidos.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}
