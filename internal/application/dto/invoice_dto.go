package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest línea para crear una factura. Si UnitPrice viene en cero se
// usa el precio vigente del producto; el total de línea siempre se recalcula.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id" validate:"required"`
	Number   string               `json:"invoice_number" validate:"required,max=50"`
	Date     string               `json:"date" validate:"required"`
	DueDate  string               `json:"due_date" validate:"required"`
	Status   string               `json:"status" validate:"omitempty,oneof=draft pending sent paid overdue"`
	Tax      decimal.Decimal      `json:"tax"`
	Items    []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft pending sent paid overdue"`
}

// InvoiceItemResponse salida de una línea de factura.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	ClientID   string                `json:"client_id"`
	ClientName string                `json:"client_name"`
	Number     string                `json:"invoice_number"`
	Date       string                `json:"date"`
	DueDate    string                `json:"due_date"`
	Status     string                `json:"status"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	Tax        decimal.Decimal       `json:"tax"`
	Total      decimal.Decimal       `json:"total"`
	Items      []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
