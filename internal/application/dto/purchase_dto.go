package dto

import "github.com/shopspring/decimal"

// PurchaseItemRequest línea para crear o actualizar una compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id" validate:"required"`
	InvoiceNumber string                `json:"invoice_number" validate:"max=50"`
	Date          string                `json:"date" validate:"required"`
	PaymentMethod string                `json:"payment_method" validate:"required,max=50"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	Notes         string                `json:"notes"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseRequest body para PUT /api/purchases/:id. Reemplaza la cabecera
// y el conjunto completo de líneas (revertir y reaplicar inventario).
type UpdatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id" validate:"required"`
	InvoiceNumber string                `json:"invoice_number" validate:"max=50"`
	Date          string                `json:"date" validate:"required"`
	PaymentMethod string                `json:"payment_method" validate:"max=50"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	Notes         string                `json:"notes"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemResponse salida de una línea de compra.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	SupplierID    string                 `json:"supplier_id"`
	SupplierName  string                 `json:"supplier_name"`
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	Date          string                 `json:"date"`
	PaymentMethod string                 `json:"payment_method"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Tax           decimal.Decimal        `json:"tax"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
