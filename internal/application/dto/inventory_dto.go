package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// AdjustInventoryRequest body para POST /api/inventory/adjustments.
// Kind solo admite increase/decrease; compras y ventas fijan su kind solas.
type AdjustInventoryRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Kind      string          `json:"kind" validate:"required,oneof=increase decrease"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Reason    string          `json:"reason" validate:"required,max=255"`
	Date      string          `json:"date" validate:"required"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Kind           string          `json:"kind"`
	MovementType   string          `json:"movement_type"` // purchase | sale | adjustment (derivado)
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason"`
	Date           string          `json:"date"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToMovementResponse mapea un movimiento a su respuesta.
func ToMovementResponse(m *entity.InventoryMovement) *MovementResponse {
	return &MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Kind:           m.Kind,
		MovementType:   m.DisplayType(),
		Quantity:       m.Quantity,
		Reason:         m.Reason,
		Date:           FormatDate(m.Date),
		ResultingStock: m.ResultingStock,
		CreatedAt:      m.CreatedAt,
	}
}

// InventoryRecordResponse salida de un registro de inventario con datos del producto.
type InventoryRecordResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductCode    string          `json:"product_code"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	Location       string          `json:"location,omitempty"`
	LastMovementAt *time.Time      `json:"last_movement_at,omitempty"`
}

// ToInventoryRecordResponse mapea un registro y su producto a la respuesta.
func ToInventoryRecordResponse(r *entity.InventoryRecord, productName, productCode string) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		ProductName:    productName,
		ProductCode:    productCode,
		CurrentStock:   r.CurrentStock,
		MinimumStock:   r.MinimumStock,
		Location:       r.Location,
		LastMovementAt: r.LastMovementAt,
	}
}
